// Command mediascout looks up a movie or series on TMDb and checks which
// private trackers carry it.
package main

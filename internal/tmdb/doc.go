// Package tmdb is a small client for The Movie Database v3 API covering the
// movie and TV search and detail endpoints mediascout needs to resolve a
// title into a TMDb identifier.
package tmdb

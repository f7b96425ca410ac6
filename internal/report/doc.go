// Package report renders lookup results for the terminal.
//
// Tables use go-pretty's rounded style. Colour is applied to banners and
// notices only when the destination is a terminal.
package report

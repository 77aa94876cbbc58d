// Package ui renders the club site in the terminal with Bubble Tea.
//
// AppModel owns one remote.Loader per resource. The club profile loader lives
// for the whole session; the events, team and socials loaders are activated
// when their page is entered and torn down when it is left, so a response
// arriving after navigation is dropped by the loader.
package ui

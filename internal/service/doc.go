// Package service provides the application services behind the HTTP API.
//
// ProfileService keeps one profile.Controller per live session, persists
// every change through store.ProfileStore and announces score movements as
// events. ScoreHistoryRecorder turns those events into score history rows.
package service

// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Detail view charts, discovery log, headless card/export commands
// 0.2.0 - Perspective universe view, camera focus transitions, search
// 0.1.0 - Initial release: KOI fetch, starfield hero, spiral placement

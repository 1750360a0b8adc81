// Package staffdir extracts personnel records (name, job title, email) from
// school-district staff directory pages without per-site code. It combines an
// optional per-domain card selector with generic table heuristics.
//
// This package contains domain types, the pure text and URL helpers shared by
// every extraction strategy, and interfaces following Ben Johnson's Standard
// Package Layout. Implementations live in subdirectories named after their
// primary dependency (e.g., goquery/, rod/, sqlite/).
package staffdir

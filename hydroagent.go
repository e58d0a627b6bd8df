// Package hydroagent locates the download links for a groundwater basin's
// latest annual report and sustainability plan on the SGMA portal.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, sqlite/).
package hydroagent

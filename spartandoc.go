// Package spartandoc provides a documentation server for the spartan-ng
// Angular component library. It fetches documentation pages from the
// spartan website, extracts structured API data (Brain and Helm tiers,
// inputs, outputs, selectors, code examples), caches the results on disk
// per library version, and exposes them to AI clients over the Model
// Context Protocol.
//
// This package contains domain types and interfaces following Ben
// Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/,
// http/, fs/, rod/, mcp/).
package spartandoc

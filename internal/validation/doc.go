// Package validation provides centralized input validation logic.
// This includes bucket name validation, download option checks, and the
// mapping of object keys onto safe local filesystem paths.
//
// All caller inputs are validated before any network or filesystem activity,
// and every derived destination path is confined to the download root.
package validation

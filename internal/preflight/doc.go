// Package preflight provides readiness checks for the filesystem paths and
// external pieces a scan depends on.
//
// These checks run in two contexts:
//   - The CLI "spdxgen status" command runs RunAll to display environment
//     health before anyone starts a long scan.
//   - Individual checks (CheckDirectoryAccess, CheckDatabase) back more
//     targeted diagnostics.
//
// The content probe is optional everywhere: its check reports availability
// but never fails, because scans fall back to built-in detection.
package preflight

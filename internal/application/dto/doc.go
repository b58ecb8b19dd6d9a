// Package dto defines the transfer objects exchanged with callers of the
// application managers. Persistent entities never cross this boundary.
//
// Naming follows one pattern per aggregate: XxxDTO for reads,
// XxxDetailDTO for joined read models, and CreateXxxDTO, UpdateXxxDTO and
// DeleteXxxDTO for commands.
package dto

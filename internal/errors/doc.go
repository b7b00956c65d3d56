// Package apperrors classifies the failures of a rootcalc run and maps
// them to process exit codes.
//
// Engine failures keep their rootfind sentinel as the wrapped cause, so
// errors.Is(err, rootfind.ErrInvalidBracket) holds through SolveError and
// WrapError alike.
package apperrors

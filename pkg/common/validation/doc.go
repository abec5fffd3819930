// Package validation checks constructor and configuration arguments and
// reports failures as *errors.ValidationError values that name the module,
// the field and a hint for fixing it.
package validation

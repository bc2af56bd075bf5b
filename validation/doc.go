// Package validation provides struct tag validation for seqkit configs.
//
// Source Config structs carry `validate:"..."` tags and call
// validation.Validate from their Validate methods.
//
//	type Config struct {
//	    Stream string `validate:"required"`
//	    Batch  int64  `validate:"gt=0"`
//	}
//	err := validation.Validate(cfg)
package validation

// Package validator provides composable field validation built around
// check functions and accumulated errors.
//
// Rules are plain closures paired with the error to report when the check
// fails. Apply runs them in order and returns ValidationErrors carrying
// every failure, so handlers can render per-field messages in one pass:
//
//	err := validator.Apply(
//		validator.RequiredString("email", req.Email),
//		validator.ValidEmail("email", req.Email),
//		validator.MinLenString("password", req.Password, 8),
//	)
//	if verrs := validator.Extract(err); verrs != nil {
//		// render field errors
//	}
package validator

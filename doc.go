package propcheck

// Package propcheck validates schema property definitions — the
// declarative field descriptions a register schema is built from —
// against a constrained JSON Schema dialect.
//
// - Recursive validation of arbitrarily nested property trees
//   (objects, arrays, oneOf unions, file properties)
// - A stable error model via Issues (JSON Pointer, code, message)
// - Fail-fast by default, with an opt-in collect-all mode
// - A configurable recursion depth guard
//
// Design policy:
// - Keep only public APIs in the root package.
// - Upload-source resolution lives under upload/, persistence under
//   registry/, the HTTP surface under httpapi/, and the CLI under
//   cmd/propcheck.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//  v := propcheck.New()
//  if err := v.ValidateProperties(props, ""); err != nil {
//      iss, _ := propcheck.AsIssues(err)
//      for _, it := range iss {
//          log.Printf("%s at %s", it.Code, it.Path)
//      }
//  }

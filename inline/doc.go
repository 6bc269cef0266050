// Package inline turns tests written as comments in parser sources into
// fixture files for a parser test runner.
//
// # Declaring tests
//
// A comment block whose first line is "test <name>" declares input the parser
// must accept; "test_err <name>" declares input it must reject. The rest of
// the block is the test body:
//
//	// test fn_item
//	// fn foo() {}
//	fn fn_item(p: &mut Parser) { ... }
//
// Names are unique per outcome across the whole source tree, and a body may
// not be empty.
//
// # Fixture directories
//
// Accepted tests are written to the ok directory and rejected tests to the err
// directory, one file per test named "<id>_<name>.<ext>" with a four digit id:
//
//	ok/0001_fn_item.rs
//	ok/0002_use_item.rs
//	err/0001_unclosed_paren.rs
//
// An existing test keeps its file and id; only its content is refreshed. New
// tests are numbered after the fixtures already present. A fixture whose test
// has disappeared from source stops the run: removing a fixture is always an
// explicit change.
//
// # Running
//
// Generate drives the whole pipeline from a config.Config. The inlinetest
// package wraps it for go test, and cmd/sourcegen exposes sync, check and list
// commands.
package inline

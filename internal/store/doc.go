// SPDX-License-Identifier: MPL-2.0

// Package store implements jlm's on-disk configuration stores.
//
// Both stores map an executable identity (the absolute path of a julia binary)
// to a content-addressed directory, root/exec/<sha1 of the path>, holding
// artifacts such as compiled system images.
//
// HomeStore is rooted at a fixed user-global directory (~/.julia/jlm by
// default) and has no document.
//
// LocalStore is rooted at a project-local ".jlm" directory discovered by
// walking upward from a starting directory. It owns data.json, which records
// the default executable and per-executable system image overrides. Every
// mutation reads the whole document, modifies it and writes it back through
// atomicfile, so readers never observe a partial document. Concurrent writers
// are not merged: the last rename wins.
package store

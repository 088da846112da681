// SPDX-License-Identifier: MIT

// Package matrix provides a row-major Dense matrix used to expand compact
// distance blocks into square form.
//
// At and Set return ErrOutOfRange instead of panicking. Symmetric checks the
// strict upper triangle against the lower one within a tolerance.
package matrix

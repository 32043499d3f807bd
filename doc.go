// Package exactcalc implements a calculator which keeps results exact whenever
// it can.
//
// Integers, fractions, and simplified square and cube roots are represented
// exactly, so "1/3+1/3+1/3" is exactly 1 and "sqrt(2)*sqrt(2)" is exactly 2.
// Integers are limited to the signed 128-bit range. When an exact computation
// would overflow that range, or when no exact form exists (e.g. "1+sqrt(2)"),
// the result falls back to a float64. Only a fallback that overflows float64 is
// an error.
//
// The syntax is the usual infix arithmetic: + - * / with ^ for integer powers,
// which is right-associative, so "2^3^2" is 2^(3^2) = 512. Unary minus binds
// looser than ^, so "-2^2" is -(2^2). The functions sqrt, cbrt, square, and
// cube each take one bracketed argument.
package exactcalc

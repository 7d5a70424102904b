// Package kernel provides core domain primitives for the rental system.
// It implements fundamental building blocks following Domain-Driven Design
// principles that are used throughout the domain model.
//
// The package includes:
//   - TimeRange: A half-open interval value object with the interval algebra
//     (inflate, merge, complement) the scheduling engine is built on
//
// These primitives are immutable and thread-safe, making them suitable for
// concurrent use. Validation that carries business meaning (such as interval
// ordering) is exposed as explicit operations rather than baked into
// construction, because the scheduling algorithms need to build intermediate
// ranges freely.
package kernel

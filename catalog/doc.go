// Package catalog provides the read-only product metadata store and the
// startup snapshot loader.
//
// The catalog is produced by an offline pipeline as three artifacts: a JSON
// metadata snapshot with parallel per-product arrays, and two binary
// embedding matrices (product-only and product+reviews) with identical row
// count and order. Row order is the contract with the vector indices:
// row i of every artifact describes the same product.
//
// Load validates that contract and fails loudly on any mismatch; after a
// successful load the store is immutable and safe for unsynchronized
// concurrent reads.
package catalog

// Package types defines the shared data model of suiup: the closed tool
// enumeration with its policy table, version specifiers, release
// descriptors from the catalog, and the install records and default
// pointers persisted by the ledger.
package types

// Package domain contains the core business entities and value objects of the
// credit simulator: accounts, inquiries, the profile aggregate root, factor
// impacts and simulation results. It is independent of any infrastructure or
// delivery mechanism; scoring rules live in the credit subpackage.
package domain

// Package openapi exposes the public contracts for turning OpenAPI documents
// into record catalogs. The kin-openapi backed parser lives under
// internal/openapi to keep that dependency hidden from consumers.
package openapi

// Package domain contains the core model for brixbalance: the sugar/pulp mass
// balance solver, its input options and its error taxonomy.
//
// The domain does not depend on YAML parsing, net/http, terminal rendering or the
// filesystem. Infra/adapters map into/from these types.
package domain

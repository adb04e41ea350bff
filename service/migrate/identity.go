package migrate

import (
	"strings"

	"github.com/google/uuid"
)

// Entity types known to the resolver. Dependents resolve against the type of
// their parent, so each type gets its own key space.
const (
	EntityCustomer  = "customer"
	EntitySupplier  = "supplier"
	EntityProduct   = "product"
	EntityWarehouse = "warehouse"
	EntityInvoice   = "invoice"
	EntityPurchase  = "purchase"
)

// Resolver maps legacy natural keys to stable target-side identifiers. The
// mapping is append-only and run-scoped: once a key resolves, every dependent
// entity in the run reuses the same identifier.
type Resolver struct {
	ids map[string]map[string]string // entityType -> legacyKey -> targetID
}

func NewResolver() *Resolver {
	return &Resolver{ids: make(map[string]map[string]string)}
}

// Resolve returns the recorded identifier for (entityType, legacyKey),
// synthesizing a new opaque one on first sight.
func (r *Resolver) Resolve(entityType, legacyKey string) string {
	m := r.ids[entityType]
	if m == nil {
		m = make(map[string]string)
		r.ids[entityType] = m
	}
	if id, ok := m[legacyKey]; ok {
		return id
	}
	id := uuid.NewString()
	m[legacyKey] = id
	return id
}

// Lookup returns the identifier without synthesizing. The second return is
// false when the key was never resolved — callers skip the dependent record
// rather than write a dangling reference.
func (r *Resolver) Lookup(entityType, legacyKey string) (string, bool) {
	id, ok := r.ids[entityType][legacyKey]
	return id, ok
}

// Prime preloads a resolver type from previously migrated parents (business
// key -> id maps read from the target store).
func (r *Resolver) Prime(entityType string, known map[string]string) {
	m := r.ids[entityType]
	if m == nil {
		m = make(map[string]string, len(known))
		r.ids[entityType] = m
	}
	for k, id := range known {
		if _, exists := m[k]; !exists {
			m[k] = id
		}
	}
}

// Len reports how many keys are resolved for a type.
func (r *Resolver) Len(entityType string) int {
	return len(r.ids[entityType])
}

// DeterministicID derives a stable UUID from the given parts. Used for
// child rows (invoice/purchase items, receivables) that have no business key
// of their own, so re-runs regenerate the same primary keys.
func DeterministicID(parts ...string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(strings.Join(parts, "|"))).String()
}

// CompositeRFC builds the composite business key used when a raw tax id is
// not unique in the legacy source: the space-stripped RFC joined with the
// legacy code by an underscore. Same inputs always yield the same composite.
func CompositeRFC(rawRFC, legacyCode string) string {
	rfc := strings.ReplaceAll(strings.TrimSpace(rawRFC), " ", "")
	if rfc == "" {
		rfc = GenericRFC
	}
	return rfc + "_" + strings.TrimSpace(legacyCode)
}

// GenericRFC is the tax authority's placeholder id for unregistered parties.
const GenericRFC = "XAXX010101000"

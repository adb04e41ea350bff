package migrate

import "math"

// WarehouseDetail is one legacy per-warehouse stock row (MULT01 shape).
type WarehouseDetail struct {
	WarehouseKey string
	SKU          string
	Quantity     float64
	MinLevel     float64
	MaxLevel     float64
}

// StockDistribution is one (product, partition) stock record on the target
// side.
type StockDistribution struct {
	StoreID  string
	SKU      string
	Quantity float64
	MinLevel float64
	MaxLevel float64
}

// DistributeResult carries the resolved records plus a drop count per
// unresolved warehouse — rows are never silently lost.
type DistributeResult struct {
	Records []StockDistribution
	Dropped map[string]int
}

// Distribute splits legacy aggregate stock across target partitions using the
// per-warehouse detail rows. Warehouses must be pre-resolved to partitions;
// rows whose warehouse has no resolved partition are dropped and counted.
func Distribute(resolver *Resolver, details []WarehouseDetail) DistributeResult {
	res := DistributeResult{Dropped: make(map[string]int)}
	for _, d := range details {
		storeID, ok := resolver.Lookup(EntityWarehouse, d.WarehouseKey)
		if !ok {
			res.Dropped[d.WarehouseKey]++
			continue
		}
		res.Records = append(res.Records, StockDistribution{
			StoreID:  storeID,
			SKU:      d.SKU,
			Quantity: d.Quantity,
			MinLevel: d.MinLevel,
			MaxLevel: d.MaxLevel,
		})
	}
	return res
}

// VerifyAggregate checks that a product's legacy aggregate equals the sum of
// its per-warehouse detail within epsilon. A mismatch is a data-quality
// warning, never fatal: legacy aggregates are sometimes stale relative to the
// detail table.
func VerifyAggregate(sku string, aggregate float64, records []StockDistribution, epsilon float64) bool {
	var sum float64
	for _, rec := range records {
		if rec.SKU == sku {
			sum += rec.Quantity
		}
	}
	return math.Abs(aggregate-sum) < epsilon
}

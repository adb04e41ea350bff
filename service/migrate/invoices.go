package migrate

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	entity "saebridge/model/entity"
	catalogRepo "saebridge/model/repository/catalog"
	"saebridge/service/legacy"
)

// Legacy documents live in two tables: FACTF01 (fiscal invoices) and FACTV01
// (sales notes). Line items sit in the matching PAR_ tables.
const (
	invoiceHeaderQuery = `
	SELECT CVE_DOC, UUID, SERIE, FOLIO, FECHA_DOC, CAN_TOT, IMPORTE, CVE_CLPV, TIP_DOC
	FROM %s`
	invoiceItemQuery = `
	SELECT p.CVE_DOC, p.CVE_ART, p.CANT, p.PREC, p.TOT_PARTIDA, i.DESCR, p.UNI_VENTA
	FROM %s p
	LEFT JOIN INVE01 i ON p.CVE_ART = i.CVE_ART`
)

var invoiceUpsert = UpsertSpec{
	Table:           "invoices",
	ConflictColumns: []string{"uuid"},
	UpdateColumns:   []string{"total", "subtotal", "status", "fecha_emision"},
}

var invoiceItemUpsert = UpsertSpec{
	Table:           "invoice_items",
	ConflictColumns: []string{"id"},
	// Items are content-addressed by deterministic id; re-runs just no-op.
}

type invoiceTable struct {
	header   string
	items    string
	isFiscal bool
	status   string
}

var invoiceTables = []invoiceTable{
	{header: "FACTF01", items: "PAR_FACTF01", isFiscal: true, status: "Facturado"},
	{header: "FACTV01", items: "PAR_FACTV01", isFiscal: false, status: "Nota de Venta"},
}

// MigrateInvoices moves both legacy document tables plus their line items.
// Customers must be migrated first: headers whose client code never resolved
// are skipped and counted, as are items whose header was skipped.
func MigrateInvoices(run *Run) (*Result, error) {
	start := time.Now()
	res := &Result{Entity: "invoices"}

	repo := catalogRepo.NewCatalogRepository(run.Target)
	customerCodes, err := repo.CustomerCodeMap(run.Params.StoreID)
	if err != nil {
		return nil, err
	}
	run.Resolver.Prime(EntityCustomer, customerCodes)

	// Re-runs must reference the stored invoice ids, not fresh ones.
	existingByUUID, err := repo.IDMap("invoices", "uuid", run.Params.StoreID)
	if err != nil {
		return nil, err
	}

	var headers []entity.Invoice
	var items []entity.InvoiceItem
	headerKeys := make([]string, 0)

	for _, tbl := range invoiceTables {
		rows, err := run.Source.Select(fmt.Sprintf(invoiceHeaderQuery, tbl.header))
		if err != nil {
			return nil, err
		}
		res.TotalRows += len(rows)

		for _, row := range rows {
			if run.Dedup.Check([]byte("invoices|" + tbl.header + "|" + fmt.Sprint(row))) {
				res.Skipped++
				continue
			}

			cveDoc := legacy.String(row, 0, "")
			if cveDoc == "" {
				res.Skipped++
				continue
			}

			cveClpv := legacy.String(row, 7, "")
			customerID, ok := run.Resolver.Lookup(EntityCustomer, cveClpv)
			if !ok {
				res.Skipped++
				res.warnf("doc %s: %v (client %s)", cveDoc, ErrUnresolvedReference, cveClpv)
				run.Log.WithFields(logrus.Fields{
					"entity": "invoices", "doc": cveDoc, "client": cveClpv,
				}).Warn(ErrUnresolvedReference)
				continue
			}

			fecha, err1 := legacy.Date(row, 4)
			subtotal, err2 := legacy.Float(row, 5, 0)
			total, err3 := legacy.Float(row, 6, 0)
			if err := errors.Join(err1, err2, err3); err != nil {
				res.Skipped++
				res.warnf("doc %s: %v", cveDoc, err)
				continue
			}
			if total == 0 {
				total = subtotal
			}

			satUUID := legacy.String(row, 1, "")
			if satUUID == "" {
				satUUID = "TEMP-" + cveDoc + "-" + tbl.header
			}

			// Reuse the stored id on re-runs so items stay attached.
			docKey := tbl.header + ":" + cveDoc
			if id, ok := existingByUUID[satUUID]; ok {
				run.Resolver.Prime(EntityInvoice, map[string]string{docKey: id})
			}
			id := run.Resolver.Resolve(EntityInvoice, docKey)

			tipo := "I"
			if t := legacy.String(row, 8, "I"); t == "D" || t == "E" {
				tipo = "E"
			}
			var xmlPath *string
			if tbl.isFiscal {
				p := satUUID + ".xml"
				xmlPath = &p
			}

			headers = append(headers, entity.Invoice{
				ID:              id,
				UUID:            satUUID,
				Serie:           legacy.StringPtr(row, 2),
				Folio:           legacy.StringPtr(row, 3),
				FechaEmision:    fecha,
				Total:           decimal.NewFromFloat(total),
				Subtotal:        decimal.NewFromFloat(subtotal),
				CustomerID:      customerID,
				TipoComprobante: tipo,
				XMLPath:         xmlPath,
				IsFiscal:        tbl.isFiscal,
				Status:          tbl.status,
				StoreID:         run.Params.StoreID,
				UserID:          run.UserID(),
			})
			headerKeys = append(headerKeys, satUUID)
		}
	}

	existing, err := repo.ExistingKeys("invoices", "uuid", run.Params.StoreID, headerKeys, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}
	up, err := Upsert(run.Target, invoiceUpsert, headers, existing,
		func(i entity.Invoice) string { return i.UUID }, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}
	res.Inserted, res.Updated = up.Inserted, up.Updated

	// Line items, keyed back through the run's doc map.
	for _, tbl := range invoiceTables {
		rows, err := run.Source.Select(fmt.Sprintf(invoiceItemQuery, tbl.items))
		if err != nil {
			return nil, err
		}
		seq := make(map[string]int)
		for _, row := range rows {
			cveDoc := legacy.String(row, 0, "")
			invoiceID, ok := run.Resolver.Lookup(EntityInvoice, tbl.header+":"+cveDoc)
			if !ok {
				res.Skipped++
				continue
			}

			cant, err1 := legacy.Float(row, 2, 0)
			prec, err2 := legacy.Float(row, 3, 0)
			tot, err3 := legacy.Float(row, 4, 0)
			if err := errors.Join(err1, err2, err3); err != nil {
				res.Skipped++
				res.warnf("doc %s item: %v", cveDoc, err)
				continue
			}

			sku := legacy.String(row, 1, "")
			descr := sku
			if d := legacy.String(row, 5, ""); d != "" {
				descr = "(" + sku + ") " + d
			}

			// Identical partidas are disambiguated by occurrence count over
			// the row content, so ids survive result-order changes between
			// runs without collapsing legitimate repeats.
			fp := invoiceID + "|" + sku + "|" +
				strconv.FormatFloat(cant, 'f', -1, 64) + "|" +
				strconv.FormatFloat(prec, 'f', -1, 64) + "|" +
				strconv.FormatFloat(tot, 'f', -1, 64)
			seq[fp]++
			items = append(items, entity.InvoiceItem{
				ID:            DeterministicID("invoice-item", fp, strconv.Itoa(seq[fp])),
				InvoiceID:     invoiceID,
				Descripcion:   descr,
				Cantidad:      cant,
				ValorUnitario: decimal.NewFromFloat(prec),
				Importe:       decimal.NewFromFloat(tot),
				Unidad:        legacy.String(row, 6, "PZA"),
			})
		}
	}

	if _, err := Upsert(run.Target, invoiceItemUpsert, items, nil,
		func(i entity.InvoiceItem) string { return i.ID }, run.Params.BatchSize); err != nil {
		return nil, err
	}
	res.Elapsed = time.Since(start)

	run.Log.WithFields(logrus.Fields{
		"entity": "invoices", "inserted": res.Inserted, "updated": res.Updated,
		"skipped": res.Skipped, "items": len(items),
	}).Info("migration step done")
	return res, nil
}

package migrate

import (
	"bytes"
	"encoding/xml"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"saebridge/config"
	entity "saebridge/model/entity"
)

// DocumentFile is one candidate XML file handed in by the caller — directory
// traversal is plumbing, not engine work.
type DocumentFile struct {
	Name    string
	Path    string
	Content []byte
}

// DocumentMeta is the extracted header of one CFDI Comprobante.
type DocumentMeta struct {
	Filename       string
	FilePath       string
	UUID           string
	Serie          *string
	Folio          *string
	Fecha          *time.Time
	RFCEmisor      *string
	NombreEmisor   *string
	RFCReceptor    *string
	NombreReceptor *string
	Total          decimal.Decimal
}

var documentUpsert = UpsertSpec{
	Table:           "associated_documents",
	ConflictColumns: []string{"uuid"},
	// Historical documents never change: insert-or-ignore on the stamp.
}

// ParseDocumentMeta extracts Comprobante metadata. Legacy files span CFDI
// versions 2.0 through 3.3 with shifting namespaces and attribute casing, so
// the walk matches local element names and case-insensitive attribute names.
// Returns (nil, nil) for XML that is not a Comprobante.
func ParseDocumentMeta(content []byte, name, path string) (*DocumentMeta, error) {
	dec := xml.NewDecoder(bytes.NewReader(content))

	meta := &DocumentMeta{Filename: name, FilePath: path, Total: decimal.Zero}
	var sawComprobante bool
	var noAprob, anoAprob string

	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch el.Name.Local {
		case "Comprobante":
			sawComprobante = true
			for _, a := range el.Attr {
				switch strings.ToLower(a.Name.Local) {
				case "serie":
					if v := strings.TrimSpace(a.Value); v != "" {
						meta.Serie = &v
					}
				case "folio":
					if v := strings.TrimSpace(a.Value); v != "" {
						meta.Folio = &v
					}
				case "fecha":
					if t, err := time.Parse("2006-01-02T15:04:05", a.Value); err == nil {
						meta.Fecha = &t
					}
				case "total":
					if d, err := decimal.NewFromString(a.Value); err == nil {
						meta.Total = d
					}
				case "noaprobacion":
					noAprob = a.Value
				case "anoaprobacion":
					anoAprob = a.Value
				}
			}
		case "Emisor":
			meta.RFCEmisor, meta.NombreEmisor = partyAttrs(el)
		case "Receptor":
			meta.RFCReceptor, meta.NombreReceptor = partyAttrs(el)
		case "TimbreFiscalDigital":
			for _, a := range el.Attr {
				if strings.EqualFold(a.Name.Local, "uuid") {
					meta.UUID = strings.TrimSpace(a.Value)
				}
			}
		}
	}

	if !sawComprobante {
		return nil, nil
	}
	// Pre-stamp versions (2.x) get a deterministic id from the approval data.
	if meta.UUID == "" {
		serie, folio := "", ""
		if meta.Serie != nil {
			serie = *meta.Serie
		}
		if meta.Folio != nil {
			folio = *meta.Folio
		}
		meta.UUID = "LEGACY-" + anoAprob + "-" + noAprob + "-" + serie + "-" + folio
	}
	return meta, nil
}

func partyAttrs(el xml.StartElement) (rfc, nombre *string) {
	for _, a := range el.Attr {
		switch strings.ToLower(a.Name.Local) {
		case "rfc":
			if v := strings.TrimSpace(a.Value); v != "" {
				rfc = &v
			}
		case "nombre":
			if v := strings.TrimSpace(a.Value); v != "" {
				nombre = &v
			}
		}
	}
	return rfc, nombre
}

// IngestDocuments parses and stores document metadata, deduplicating by
// content fingerprint first (identical files live in several legacy folders)
// and by stamp UUID at write time.
func IngestDocuments(run *Run, files []DocumentFile) (*Result, error) {
	start := time.Now()
	res := &Result{Entity: "documents"}
	res.TotalRows = len(files)

	// When Redis is configured, fingerprints of past runs short-circuit the
	// parse entirely; the uuid conflict target stays the source of truth.
	const fingerprintSet = "saebridge:doc_fingerprints"

	records := make([]entity.AssociatedDocument, 0, len(files))
	tokens := make([]any, 0, len(files))
	for _, f := range files {
		token := Fingerprint(f.Content)
		if run.Dedup.Seen(token) {
			res.Skipped++
			continue
		}
		if config.RedisClient != nil &&
			config.RedisClient.SIsMember(config.RedisCtx(), fingerprintSet, token).Val() {
			res.Skipped++
			run.Dedup.Mark(token)
			continue
		}
		run.Dedup.Mark(token)
		tokens = append(tokens, token)

		meta, err := ParseDocumentMeta(f.Content, f.Name, f.Path)
		if err != nil || meta == nil {
			res.Skipped++
			if err != nil {
				res.warnf("%s: %v", f.Name, err)
			}
			continue
		}

		records = append(records, entity.AssociatedDocument{
			ID:             DeterministicID("document", meta.UUID),
			Filename:       meta.Filename,
			FilePath:       meta.FilePath,
			UUID:           meta.UUID,
			Serie:          meta.Serie,
			Folio:          meta.Folio,
			Fecha:          meta.Fecha,
			RFCEmisor:      meta.RFCEmisor,
			NombreEmisor:   meta.NombreEmisor,
			RFCReceptor:    meta.RFCReceptor,
			NombreReceptor: meta.NombreReceptor,
			Total:          meta.Total,
		})
	}

	up, err := Upsert(run.Target, documentUpsert, records, nil,
		func(d entity.AssociatedDocument) string { return d.UUID }, run.Params.BatchSize)
	if err != nil {
		return nil, err
	}
	if config.RedisClient != nil && len(tokens) > 0 {
		config.RedisClient.SAdd(config.RedisCtx(), fingerprintSet, tokens...)
	}
	res.Inserted, res.Updated = up.Inserted, up.Updated
	res.Elapsed = time.Since(start)

	run.Log.WithFields(logrus.Fields{
		"entity": "documents", "inserted": res.Inserted, "skipped": res.Skipped,
	}).Info("ingest done")
	return res, nil
}

// Package index persists the job postings vector collection: one Redis hash
// per posting plus an FT index over the vector field, and a meta hash
// recording which embedding model built the collection.
package index

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/careerlens/careerlens/internal/db"
	"github.com/careerlens/careerlens/internal/domain"
	"github.com/careerlens/careerlens/internal/encoder"
)

const (
	vectorField  = "__vector"
	contentField = "__content"
)

// store is the consumer interface for the index repository (ISP).
type store interface {
	db.HashStore
	db.IndexManager
	db.Searcher
}

// Options configures the repository for one collection.
type Options struct {
	KeyPrefix  string // e.g. "careerlens:"
	Collection string // e.g. "job_database"
	Model      string
	Dimensions int
	HNSWM      int
	HNSWEF     int
}

// Meta describes a persisted collection.
type Meta struct {
	Collection string
	Model      string
	Dimensions int
	Count      int
	CreatedAt  time.Time
}

// Document is one posting ready for insertion: the embedded document text,
// display metadata, and the embedding itself.
type Document struct {
	ID      string
	Content string
	Vector  []float32
	Fields  map[string]string
}

// Match is one KNN hit.
type Match struct {
	Key    string
	Score  float64
	Fields map[string]string
}

// Repository manages the postings collection in Redis.
type Repository struct {
	store  store
	opts   Options
	logger *zap.Logger
}

// New creates a Repository.
func New(s store, opts Options, logger *zap.Logger) *Repository {
	return &Repository{store: s, opts: opts, logger: logger}
}

func (r *Repository) metaKey() string {
	return r.opts.KeyPrefix + "collection:" + r.opts.Collection
}

func (r *Repository) docKey(id string) string {
	return r.docPrefix() + id
}

func (r *Repository) docPrefix() string {
	return r.opts.KeyPrefix + r.opts.Collection + ":doc:"
}

func (r *Repository) indexName() string {
	return r.opts.KeyPrefix + r.opts.Collection + ":idx"
}

// Exists reports whether the collection meta and FT index are both present.
func (r *Repository) Exists(ctx context.Context) (bool, error) {
	hasMeta, err := r.store.Exists(ctx, r.metaKey())
	if err != nil {
		return false, fmt.Errorf("check collection meta: %w", err)
	}
	if !hasMeta {
		return false, nil
	}

	hasIndex, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return false, fmt.Errorf("check index: %w", err)
	}
	return hasIndex, nil
}

// Meta reads the persisted collection metadata.
func (r *Repository) Meta(ctx context.Context) (Meta, error) {
	fields, err := r.store.HGetAll(ctx, r.metaKey())
	if err != nil {
		return Meta{}, fmt.Errorf("read collection meta: %w", err)
	}
	if len(fields) == 0 {
		return Meta{}, domain.ErrNotFound
	}

	meta := Meta{
		Collection: fields["name"],
		Model:      fields["model"],
	}
	meta.Dimensions, _ = strconv.Atoi(fields["dimensions"])
	meta.Count, _ = strconv.Atoi(fields["count"])
	if ts, err := strconv.ParseInt(fields["created_at"], 10, 64); err == nil {
		meta.CreatedAt = time.Unix(ts, 0).UTC()
	}
	return meta, nil
}

// VerifyModel checks the persisted collection against the active embedding
// model. A mismatch means the stored vectors are incompatible with query
// vectors and the collection must be rebuilt.
func (r *Repository) VerifyModel(ctx context.Context) error {
	meta, err := r.Meta(ctx)
	if err != nil {
		return err
	}
	if meta.Model != r.opts.Model || meta.Dimensions != r.opts.Dimensions {
		return fmt.Errorf("collection built with %s/%d, encoder is %s/%d: %w",
			meta.Model, meta.Dimensions, r.opts.Model, r.opts.Dimensions,
			domain.ErrModelVersionMismatch)
	}
	return nil
}

// Create provisions the FT index and writes collection meta for count docs.
func (r *Repository) Create(ctx context.Context, count int) error {
	def := &db.IndexDefinition{
		Name:     r.indexName(),
		Prefixes: []string{r.docPrefix()},
		Fields: []db.IndexField{
			{Name: "industry", Type: db.IndexFieldTag, TagSeparator: ","},
			{Name: "role_category", Type: db.IndexFieldTag, TagSeparator: ","},
			{
				Name:              vectorField,
				Type:              db.IndexFieldVector,
				VectorAlgo:        db.VectorHNSW,
				VectorDim:         r.opts.Dimensions,
				VectorDistance:    db.DistanceCosine,
				VectorM:           r.opts.HNSWM,
				VectorEFConstruct: r.opts.HNSWEF,
			},
		},
	}
	if err := def.Validate(); err != nil {
		return fmt.Errorf("index definition: %w", err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index: %w", err)
	}

	meta := map[string]string{
		"name":        r.opts.Collection,
		"model":       r.opts.Model,
		"dimensions":  strconv.Itoa(r.opts.Dimensions),
		"count":       strconv.Itoa(count),
		"created_at":  strconv.FormatInt(time.Now().Unix(), 10),
		"description": "Job listings with skills and requirements",
	}
	if err := r.store.HSet(ctx, r.metaKey(), meta); err != nil {
		return fmt.Errorf("write collection meta: %w", err)
	}
	return nil
}

// InsertBatch stores documents in one pipelined round-trip.
func (r *Repository) InsertBatch(ctx context.Context, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(docs))
	for i, doc := range docs {
		fields := make(map[string]string, len(doc.Fields)+2)
		for k, v := range doc.Fields {
			fields[k] = v
		}
		fields[contentField] = doc.Content
		fields[vectorField] = vectorToBytes(doc.Vector)
		items[i] = db.HashSetItem{Key: r.docKey(doc.ID), Fields: fields}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("insert batch of %d: %w", len(docs), err)
	}
	return nil
}

// Query runs a KNN search and returns up to k matches ordered by descending
// similarity.
func (r *Repository) Query(ctx context.Context, vector []float32, k int) ([]Match, error) {
	// Metadata fields only: the raw vector and document text stay out of
	// match results.
	res, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName: r.indexName(),
		Vector:    vector,
		K:         k,
		ReturnFields: []string{
			encoder.FieldTitle, encoder.FieldSkills, encoder.FieldExperience,
			encoder.FieldRole, encoder.FieldIndustry, encoder.FieldSalary,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("knn query: %w", err)
	}

	matches := make([]Match, 0, len(res.Entries))
	for _, e := range res.Entries {
		matches = append(matches, Match{Key: e.Key, Score: e.Score, Fields: e.Fields})
	}
	return matches, nil
}

// Count returns the number of indexed postings.
func (r *Repository) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, r.indexName(), "*")
	if err != nil {
		return 0, fmt.Errorf("count postings: %w", err)
	}
	return n, nil
}

// Drop removes the FT index, all document hashes and the collection meta.
func (r *Repository) Drop(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.indexName()); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index: %w", err)
	}

	keys, err := r.store.Scan(ctx, r.docPrefix()+"*")
	if err != nil {
		return fmt.Errorf("scan documents: %w", err)
	}
	for _, key := range keys {
		if err := r.store.Del(ctx, key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}

	if err := r.store.Del(ctx, r.metaKey()); err != nil {
		return fmt.Errorf("delete collection meta: %w", err)
	}

	r.logger.Info("Dropped collection",
		zap.String("collection", r.opts.Collection),
		zap.Int("documents", len(keys)))
	return nil
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

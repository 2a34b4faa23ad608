// Package csvrepo is the file-backed tabular vehicle engine. The whole table
// lives in one CSV file; every mutating call rewrites the file via a
// temp-and-rename so a crash never leaves a partial table behind.
package csvrepo

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/you-humble/dealership/internal/importer"
	"github.com/you-humble/dealership/internal/model"
	"github.com/you-humble/dealership/internal/repository/vehicle"
)

type Repository struct {
	mu   sync.Mutex
	path string
	byID map[string]*model.Vehicle
}

// Open loads the table file. A missing file is an empty table. A file whose
// header has no "id" column is treated as a legacy bulk-import source: its
// rows are parsed, identities are generated, and the normalized table is
// written back in place.
func Open(path string) (*Repository, error) {
	const op = "csvrepo.Open"

	r := &Repository{path: path, byID: make(map[string]*model.Vehicle)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	head, err := csv.NewReader(bytes.NewReader(data)).Read()
	if err == io.EOF {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: header: %w", op, err)
	}

	if !hasIDColumn(head) {
		rep, err := importer.ReadCars(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: legacy import: %w", op, err)
		}
		for _, v := range rep.Vehicles {
			r.byID[v.ID] = v
		}
		if err := r.persist(); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		return r, nil
	}

	cr := csv.NewReader(bytes.NewReader(data))
	if _, err := cr.Read(); err != nil {
		return nil, fmt.Errorf("%s: header: %w", op, err)
	}
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		v, err := decode(rec)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		r.byID[v.ID] = v
	}
	return r, nil
}

func hasIDColumn(head []string) bool {
	for _, col := range head {
		if col == "id" {
			return true
		}
	}
	return false
}

func (r *Repository) Add(_ context.Context, v *model.Vehicle) error {
	const op = "csvrepo.Add"

	if err := v.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[v.ID]; ok {
		return fmt.Errorf("%s: %w: %s", op, model.ErrDuplicate, v.ID)
	}

	r.byID[v.ID] = v.Clone()
	if err := r.persist(); err != nil {
		delete(r.byID, v.ID)
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Repository) Get(_ context.Context, id string) (*model.Vehicle, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byID[id]
	if !ok {
		return nil, false, nil
	}
	return v.Clone(), true, nil
}

func (r *Repository) GetRequired(ctx context.Context, id string) (*model.Vehicle, error) {
	const op = "csvrepo.GetRequired"

	v, ok, err := r.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w: %s", op, model.ErrVehicleNotFound, id)
	}
	return v, nil
}

func (r *Repository) ListAll(_ context.Context) ([]*model.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*model.Vehicle, 0, len(r.byID))
	for _, v := range r.byID {
		out = append(out, v.Clone())
	}
	return out, nil
}

func (r *Repository) Update(_ context.Context, v *model.Vehicle) error {
	const op = "csvrepo.Update"

	if err := v.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[v.ID]
	if !ok {
		return fmt.Errorf("%s: %w: %s", op, model.ErrVehicleNotFound, v.ID)
	}

	r.byID[v.ID] = v.Clone()
	if err := r.persist(); err != nil {
		r.byID[v.ID] = prev
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Repository) Delete(_ context.Context, id string) error {
	const op = "csvrepo.Delete"

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[id]
	if !ok {
		return fmt.Errorf("%s: %w: %s", op, model.ErrVehicleNotFound, id)
	}

	delete(r.byID, id)
	if err := r.persist(); err != nil {
		r.byID[id] = prev
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r *Repository) Search(_ context.Context, criteria model.SearchCriteria) ([]*model.Vehicle, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	parsed := vehicle.ParseCriteria(criteria)
	out := make([]*model.Vehicle, 0)
	for _, v := range r.byID {
		if vehicle.Matches(v, parsed) {
			out = append(out, v.Clone())
		}
	}
	return out, nil
}

// persist rewrites the whole table. Callers hold the lock.
func (r *Repository) persist() error {
	ids := make([]string, 0, len(r.byID))
	for id := range r.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, id := range ids {
		if err := w.Write(encode(r.byID[id])); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), filepath.Base(r.path)+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), r.path)
}

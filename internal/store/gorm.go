package store

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecordRow stores one record as its JSON document.
type RecordRow struct {
	Collection string `gorm:"primaryKey;size:64"`
	ID         int64  `gorm:"primaryKey;autoIncrement:false"`
	Data       string `gorm:"type:text;not null"`
}

func (RecordRow) TableName() string { return "records" }

// SequenceRow is the per-collection id high-water mark.
type SequenceRow struct {
	Collection string `gorm:"primaryKey;size:64"`
	LastID     int64  `gorm:"not null"`
}

func (SequenceRow) TableName() string { return "record_sequences" }

// Models lists the tables GormStore needs migrated.
func Models() []any {
	return []any{&RecordRow{}, &SequenceRow{}}
}

// GormStore keeps each collection as rows of a generic records table. It
// runs on the embedded sqlite dialect or on postgres.
type GormStore struct {
	db  *gorm.DB
	now Clock
}

var _ Store = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, now: utcNow}
}

func (s *GormStore) WithClock(now Clock) *GormStore {
	s.now = now
	return s
}

// locking adds SELECT ... FOR UPDATE where the dialect supports it.
func locking(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

func decodeRow(row RecordRow) (Document, error) {
	var doc Document
	if err := json.Unmarshal([]byte(row.Data), &doc); err != nil {
		return nil, storageErr("decode", err)
	}
	return doc, nil
}

func encodeDoc(doc Document) (string, error) {
	b, err := json.Marshal(doc)
	if err != nil {
		return "", storageErr("encode", err)
	}
	return string(b), nil
}

func (s *GormStore) rows(ctx context.Context, c Collection) ([]Document, error) {
	var rows []RecordRow
	if err := s.db.WithContext(ctx).
		Where("collection = ?", string(c)).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, storageErr("read", err)
	}
	out := make([]Document, 0, len(rows))
	for _, r := range rows {
		doc, err := decodeRow(r)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, nil
}

func (s *GormStore) GetAll(ctx context.Context, c Collection) ([]Document, error) {
	return s.rows(ctx, c)
}

func (s *GormStore) GetByID(ctx context.Context, c Collection, id int64) (Document, error) {
	var row RecordRow
	err := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", string(c), id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, storageErr("read", err)
	}
	return decodeRow(row)
}

func (s *GormStore) Find(ctx context.Context, c Collection, f Filter) ([]Document, error) {
	nf, err := normalize(f)
	if err != nil {
		return nil, err
	}
	docs, err := s.rows(ctx, c)
	if err != nil {
		return nil, err
	}
	out := []Document{}
	for _, d := range docs {
		if nf.Matches(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (s *GormStore) Create(ctx context.Context, c Collection, fields Document) (Document, error) {
	doc, err := prepareFields(fields)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var seq SequenceRow
		if err := locking(tx).
			Where("collection = ?", string(c)).
			Limit(1).
			Find(&seq).Error; err != nil {
			return err
		}

		var maxID int64
		if err := tx.Model(&RecordRow{}).
			Where("collection = ?", string(c)).
			Select("COALESCE(MAX(id), 0)").
			Scan(&maxID).Error; err != nil {
			return err
		}

		id := maxID
		if seq.LastID > id {
			id = seq.LastID
		}
		id++

		ts := stamp(s.now())
		doc[FieldID] = float64(id)
		doc[FieldCreatedAt] = ts
		doc[FieldUpdatedAt] = ts

		data, err := encodeDoc(doc)
		if err != nil {
			return err
		}
		if err := tx.Create(&RecordRow{Collection: string(c), ID: id, Data: data}).Error; err != nil {
			return err
		}

		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "collection"}},
			DoUpdates: clause.AssignmentColumns([]string{"last_id"}),
		}).Create(&SequenceRow{Collection: string(c), LastID: id}).Error
	})
	if err != nil {
		return nil, asStorageErr("create", err)
	}
	return doc, nil
}

func (s *GormStore) Update(ctx context.Context, c Collection, id int64, p Patch) (Document, error) {
	np, err := normalize(p)
	if err != nil {
		return nil, err
	}

	var out Document
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row RecordRow
		if err := locking(tx).
			Where("collection = ? AND id = ?", string(c), id).
			First(&row).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		doc, err := decodeRow(row)
		if err != nil {
			return err
		}
		doc = applyPatch(doc, np, s.now())

		data, err := encodeDoc(doc)
		if err != nil {
			return err
		}
		if err := tx.Model(&RecordRow{}).
			Where("collection = ? AND id = ?", string(c), id).
			Update("data", data).Error; err != nil {
			return err
		}
		out = doc
		return nil
	})
	if errors.Is(err, ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, asStorageErr("update", err)
	}
	return out, nil
}

func (s *GormStore) Delete(ctx context.Context, c Collection, id int64) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", string(c), id).
		Delete(&RecordRow{})
	if res.Error != nil {
		return false, storageErr("delete", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (s *GormStore) Snapshot(ctx context.Context) (map[Collection][]Document, error) {
	var rows []RecordRow
	if err := s.db.WithContext(ctx).
		Order("collection ASC, id ASC").
		Find(&rows).Error; err != nil {
		return nil, storageErr("read", err)
	}

	out := make(map[Collection][]Document, len(Collections))
	for _, c := range Collections {
		out[c] = []Document{}
	}
	for _, r := range rows {
		doc, err := decodeRow(r)
		if err != nil {
			return nil, err
		}
		c := Collection(r.Collection)
		out[c] = append(out[c], doc)
	}
	return out, nil
}

func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func asStorageErr(op string, err error) error {
	if IsStorage(err) {
		return err
	}
	return storageErr(op, err)
}

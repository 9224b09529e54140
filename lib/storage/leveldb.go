package storage

import (
	"encoding/json"
	"fmt"

	"github.com/syndtr/goleveldb/leveldb"
	leveldbStorage "github.com/syndtr/goleveldb/leveldb/storage"
	leveldbUtil "github.com/syndtr/goleveldb/leveldb/util"

	"boscoin.io/benor/lib/common"
	"boscoin.io/benor/lib/errors"
)

type LevelDBBackend struct {
	DB *leveldb.DB

	config *Config
}

func setLevelDBCoreError(err error) error {
	if err == nil {
		return nil
	}

	return errors.NewError(
		errors.StorageCoreError.Code,
		fmt.Sprintf("%s: %s", errors.StorageCoreError.Message, err.Error()),
	)
}

func NewStorage(config *Config) (*LevelDBBackend, error) {
	var db *leveldb.DB
	var err error

	switch config.Scheme {
	case "file":
		db, err = leveldb.OpenFile(config.Path, nil)
	case "memory":
		db, err = leveldb.Open(leveldbStorage.NewMemStorage(), nil)
	default:
		return nil, errors.InvalidStorage.Clone().SetData("scheme", config.Scheme)
	}
	if err != nil {
		return nil, setLevelDBCoreError(err)
	}

	return &LevelDBBackend{DB: db, config: config}, nil
}

func NewTestStorage() *LevelDBBackend {
	st, err := NewStorage(&Config{Scheme: "memory"})
	if err != nil {
		panic(err)
	}

	return st
}

func (st *LevelDBBackend) Config() *Config {
	return st.config
}

func (st *LevelDBBackend) Close() error {
	return st.DB.Close()
}

func (st *LevelDBBackend) makeKey(key string) []byte {
	return []byte(key)
}

func (st *LevelDBBackend) Has(k string) (bool, error) {
	ok, err := st.DB.Has(st.makeKey(k), nil)
	if err != nil {
		return false, setLevelDBCoreError(err)
	}

	return ok, nil
}

func (st *LevelDBBackend) GetRaw(k string) ([]byte, error) {
	b, err := st.DB.Get(st.makeKey(k), nil)
	if err == leveldb.ErrNotFound {
		return nil, errors.StorageRecordNotFound.Clone().SetData("key", k)
	}

	return b, setLevelDBCoreError(err)
}

func (st *LevelDBBackend) Get(k string, i interface{}) error {
	b, err := st.GetRaw(k)
	if err != nil {
		return err
	}

	return setLevelDBCoreError(json.Unmarshal(b, i))
}

// New stores a new record; an existing key is an error.
func (st *LevelDBBackend) New(k string, v interface{}) (err error) {
	var encoded []byte
	if serializable, ok := v.(common.Serializable); ok {
		encoded, err = serializable.Serialize()
	} else {
		encoded, err = json.Marshal(v)
	}
	if err != nil {
		return setLevelDBCoreError(err)
	}

	var exists bool
	if exists, err = st.Has(k); err != nil {
		return
	} else if exists {
		return errors.StorageRecordExists.Clone().SetData("key", k)
	}

	return setLevelDBCoreError(st.DB.Put(st.makeKey(k), encoded, nil))
}

func (st *LevelDBBackend) Remove(k string) error {
	if exists, err := st.Has(k); err != nil {
		return err
	} else if !exists {
		return errors.StorageRecordNotFound.Clone().SetData("key", k)
	}

	return setLevelDBCoreError(st.DB.Delete(st.makeKey(k), nil))
}

type (
	// WalkFunc returns false to stop walking.
	WalkFunc   func(key, value []byte) (bool, error)
	WalkOption struct {
		Limit   uint64
		Reverse bool
	}
)

func NewWalkOption(limit uint64, reverse bool) *WalkOption {
	return &WalkOption{
		Limit:   limit,
		Reverse: reverse,
	}
}

// Walk calls walkFunc for the records under prefix in key order, or in
// reverse order; a zero limit walks every record.
func (st *LevelDBBackend) Walk(prefix string, option *WalkOption, walkFunc WalkFunc) error {
	if option == nil {
		option = NewWalkOption(0, false)
	}

	var dbRange *leveldbUtil.Range
	if len(prefix) > 0 {
		dbRange = leveldbUtil.BytesPrefix(st.makeKey(prefix))
	}

	iter := st.DB.NewIterator(dbRange, nil)
	defer iter.Release()

	first, next := iter.First, iter.Next
	if option.Reverse {
		first, next = iter.Last, iter.Prev
	}

	var cnt uint64
	for ok := first(); ok; ok = next() {
		if option.Limit > 0 && cnt >= option.Limit {
			break
		}

		if goOn, err := walkFunc(iter.Key(), iter.Value()); err != nil {
			return err
		} else if !goOn {
			break
		}
		cnt++
	}

	return setLevelDBCoreError(iter.Error())
}

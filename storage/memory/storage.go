/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package memorystorage

import (
	"errors"
	"sync"

	"github.com/ortuman/rabber/model/serializer"
)

var (
	mockErrMu   sync.RWMutex
	mockErr     bool
	invokeLimit int32
	invokeCount int32
)

// ErrMocked will be returned by any repository method when mocked error is activated.
var ErrMocked = errors.New("memstorage: mocked error")

// memoryStorage represents an in memory base storage instance.
// Entities are kept serialized so that callers never share state with the store.
type memoryStorage struct {
	mu sync.RWMutex
	b  map[string][]byte
}

// newStorage returns a new in memory storage instance.
func newStorage() *memoryStorage {
	return &memoryStorage{b: make(map[string][]byte)}
}

// EnableMockedError enables in memory mocked error.
func EnableMockedError() {
	EnableMockedErrorWithInvokeLimit(1)
}

// EnableMockedErrorWithInvokeLimit enables in memory mocked error after a given invocation limit is reached.
func EnableMockedErrorWithInvokeLimit(limit int32) {
	mockErrMu.Lock()
	defer mockErrMu.Unlock()
	mockErr = true
	invokeLimit = limit
	invokeCount = 0
}

// DisableMockedError disables in memory mocked error.
func DisableMockedError() {
	mockErrMu.Lock()
	defer mockErrMu.Unlock()
	mockErr = false
}

func (m *memoryStorage) saveEntity(k string, entity serializer.Serializer) error {
	return m.inWriteLock(func() error {
		return m.putEntity(k, entity)
	})
}

func (m *memoryStorage) getEntity(k string, entity serializer.Deserializer) (bool, error) {
	var ok bool
	err := m.inReadLock(func() error {
		var fnErr error
		ok, fnErr = m.readEntity(k, entity)
		return fnErr
	})
	return ok, err
}

func (m *memoryStorage) deleteKey(k string) error {
	return m.inWriteLock(func() error {
		delete(m.b, k)
		return nil
	})
}

func (m *memoryStorage) keyExists(k string) (bool, error) {
	var ok bool
	err := m.inReadLock(func() error {
		_, ok = m.b[k]
		return nil
	})
	return ok, err
}

// putEntity and readEntity must be called holding the storage lock.
func (m *memoryStorage) putEntity(k string, entity serializer.Serializer) error {
	b, err := serializer.Serialize(entity)
	if err != nil {
		return err
	}
	m.b[k] = b
	return nil
}

func (m *memoryStorage) readEntity(k string, entity serializer.Deserializer) (bool, error) {
	b, ok := m.b[k]
	if !ok {
		return false, nil
	}
	if err := serializer.Deserialize(b, entity); err != nil {
		return false, err
	}
	return true, nil
}

func (m *memoryStorage) putSlice(k string, slice interface{}) error {
	b, err := serializer.SerializeSlice(slice)
	if err != nil {
		return err
	}
	m.b[k] = b
	return nil
}

func (m *memoryStorage) readSlice(k string, slice interface{}) error {
	b, ok := m.b[k]
	if !ok {
		return nil
	}
	return serializer.DeserializeSlice(b, slice)
}

func (m *memoryStorage) inWriteLock(f func() error) error {
	if err := checkMockedError(); err != nil {
		return err
	}
	m.mu.Lock()
	err := f()
	m.mu.Unlock()
	return err
}

func (m *memoryStorage) inReadLock(f func() error) error {
	if err := checkMockedError(); err != nil {
		return err
	}
	m.mu.RLock()
	err := f()
	m.mu.RUnlock()
	return err
}

func checkMockedError() error {
	mockErrMu.Lock()
	defer mockErrMu.Unlock()

	if mockErr {
		invokeCount++
		if invokeCount >= invokeLimit {
			return ErrMocked
		}
	}
	return nil
}

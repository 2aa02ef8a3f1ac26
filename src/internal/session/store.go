/*
 *  Copyright (c) 2025, WSO2 LLC. (http://www.wso2.org) All Rights Reserved.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 *
 */

// Package session holds the in-memory store correlating an OAuth authorize
// call with its callback. State is keyed per caller session, consumed exactly
// once, and never persisted.
package session

import (
	"sync"
	"time"

	"plugin-api/src/internal/model"
)

// Store is a mutex-guarded map of session id to pending authorization.
// Safe for concurrent authorize/callback pairs from different callers.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	pending map[string]model.PendingAuthorization
}

// NewStore creates a store whose entries expire after ttl.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		ttl:     ttl,
		now:     time.Now,
		pending: make(map[string]model.PendingAuthorization),
	}
}

// Put records the pending authorization for sid. A second authorize call from
// the same session replaces the first pending attempt; only one in-flight
// authorization is supported per caller.
func (s *Store) Put(sid string, auth model.PendingAuthorization) {
	s.mu.Lock()
	defer s.mu.Unlock()

	auth.CreatedAt = s.now()
	s.pending[sid] = auth
}

// Take returns the pending authorization for sid and removes it, so the
// stored client secret can never serve a second callback. Expired entries are
// treated as absent.
func (s *Store) Take(sid string) (model.PendingAuthorization, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	auth, ok := s.pending[sid]
	if !ok {
		return model.PendingAuthorization{}, false
	}
	delete(s.pending, sid)

	if s.now().Sub(auth.CreatedAt) > s.ttl {
		return model.PendingAuthorization{}, false
	}
	return auth, true
}

// Len reports the number of pending authorizations; used by tests and the
// periodic sweep.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Sweep drops expired entries. Called opportunistically; the store stays
// correct without it since Take checks expiry, but abandoned authorize calls
// would otherwise pin secrets in memory until process exit.
func (s *Store) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-s.ttl)
	for sid, auth := range s.pending {
		if auth.CreatedAt.Before(cutoff) {
			delete(s.pending, sid)
		}
	}
}

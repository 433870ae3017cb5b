// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package badger

import "github.com/poiesic/grantmatch/store"

// NewMemoryRepositories creates in-memory grant and user repositories for testing.
// Returns grantRepo, userRepo, backend, and error.
// Caller must close both repos and backend when done.
func NewMemoryRepositories() (store.GrantRepository, store.UserRepository, *Backend, error) {
	backend, err := OpenBackend("", true)
	if err != nil {
		return nil, nil, nil, err
	}

	grantRepo, err := NewGrantRepository(backend)
	if err != nil {
		backend.Close()
		return nil, nil, nil, err
	}

	userRepo, err := NewUserRepository(backend)
	if err != nil {
		grantRepo.Close()
		backend.Close()
		return nil, nil, nil, err
	}

	return grantRepo, userRepo, backend, nil
}

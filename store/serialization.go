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


package store

import (
	"github.com/poiesic/grantmatch/core"
)

// MarshalID serializes an ID to bytes.
func MarshalID(id core.ID) []byte {
	buf := make([]byte, IDMUS.Size(id))
	IDMUS.Marshal(id, buf)
	return buf
}

// UnmarshalID deserializes an ID from bytes.
func UnmarshalID(data []byte) (core.ID, error) {
	id, _, err := IDMUS.Unmarshal(data)
	return id, err
}

// MarshalGrantRecord serializes a GrantRecord to bytes.
func MarshalGrantRecord(grant *core.GrantRecord) []byte {
	buf := make([]byte, GrantRecordMUS.Size(*grant))
	GrantRecordMUS.Marshal(*grant, buf)
	return buf
}

// UnmarshalGrantRecord deserializes a GrantRecord from bytes.
func UnmarshalGrantRecord(data []byte) (*core.GrantRecord, error) {
	grant, _, err := GrantRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &grant, nil
}

// MarshalUserProfile serializes a UserProfile to bytes.
func MarshalUserProfile(user *core.UserProfile) []byte {
	buf := make([]byte, UserProfileMUS.Size(*user))
	UserProfileMUS.Marshal(*user, buf)
	return buf
}

// UnmarshalUserProfile deserializes a UserProfile from bytes.
func UnmarshalUserProfile(data []byte) (*core.UserProfile, error) {
	user, _, err := UserProfileMUS.Unmarshal(data)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

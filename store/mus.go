package store

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/grantmatch/core"
)

// Hand-maintained MUS serializers for the stored domain types. Field order
// is part of the wire format: append new fields at the end, never reorder.

var (
	// IDMUS serializes core.ID.
	IDMUS = idMUS{}
	// GrantRecordMUS serializes core.GrantRecord.
	GrantRecordMUS = grantRecordMUS{}
	// UserProfileMUS serializes core.UserProfile.
	UserProfileMUS = userProfileMUS{}

	stringSliceMUS = ord.NewSliceSer[string](ord.String)
)

type idMUS struct{}

func (idMUS) Marshal(v core.ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (idMUS) Unmarshal(bs []byte) (v core.ID, n int, err error) {
	num, n, err := varint.Uint64.Unmarshal(bs)
	return core.ID(num), n, err
}

func (idMUS) Size(v core.ID) int {
	return varint.Uint64.Size(uint64(v))
}

type grantRecordMUS struct{}

func (grantRecordMUS) Marshal(v core.GrantRecord, bs []byte) (n int) {
	n = varint.Uint64.Marshal(uint64(v.Id), bs)
	n += ord.String.Marshal(v.Source, bs[n:])
	n += ord.String.Marshal(v.ProgramName, bs[n:])
	n += ord.String.Marshal(v.Description, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += ord.String.Marshal(v.Deadline, bs[n:])
	n += ord.String.Marshal(v.FundingLow, bs[n:])
	n += ord.String.Marshal(v.FundingHigh, bs[n:])
	n += ord.String.Marshal(v.Eligibility, bs[n:])
	n += ord.String.Marshal(v.Interests, bs[n:])
	n += ord.String.Marshal(v.ApplicationProcess, bs[n:])
	n += ord.String.Marshal(v.Contact, bs[n:])
	n += ord.String.Marshal(v.URL, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.ScrapedAt, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.InsertedAt, bs[n:])
	return
}

func (grantRecordMUS) Unmarshal(bs []byte) (v core.GrantRecord, n int, err error) {
	var (
		n1 int
		id uint64
	)
	id, n, err = varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Id = core.ID(id)
	fields := []*string{
		&v.Source, &v.ProgramName, &v.Description, &v.Summary, &v.Deadline,
		&v.FundingLow, &v.FundingHigh, &v.Eligibility, &v.Interests,
		&v.ApplicationProcess, &v.Contact, &v.URL,
	}
	for _, field := range fields {
		*field, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	v.ScrapedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.InsertedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (grantRecordMUS) Size(v core.GrantRecord) (size int) {
	size = varint.Uint64.Size(uint64(v.Id))
	for _, s := range []string{
		v.Source, v.ProgramName, v.Description, v.Summary, v.Deadline,
		v.FundingLow, v.FundingHigh, v.Eligibility, v.Interests,
		v.ApplicationProcess, v.Contact, v.URL,
	} {
		size += ord.String.Size(s)
	}
	size += raw.TimeUnixMicro.Size(v.ScrapedAt)
	size += raw.TimeUnixMicro.Size(v.InsertedAt)
	return
}

type userProfileMUS struct{}

func (userProfileMUS) Marshal(v core.UserProfile, bs []byte) (n int) {
	n = ord.String.Marshal(v.UserID, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += varint.Int.Marshal(v.Age, bs[n:])
	n += ord.String.Marshal(v.Residency, bs[n:])
	n += ord.String.Marshal(v.Income, bs[n:])
	n += ord.String.Marshal(v.Gender, bs[n:])
	n += ord.String.Marshal(v.StudentStatus, bs[n:])
	n += ord.String.Marshal(v.ImmigrantStatus, bs[n:])
	n += ord.String.Marshal(v.IndigenousStatus, bs[n:])
	n += ord.String.Marshal(v.VeteranStatus, bs[n:])
	n += varint.Int64.Marshal(v.FundingGoalLow, bs[n:])
	n += varint.Int64.Marshal(v.FundingGoalHigh, bs[n:])
	n += stringSliceMUS.Marshal(v.FundingPurpose, bs[n:])
	n += stringSliceMUS.Marshal(v.EligibilityTags, bs[n:])
	n += ord.String.Marshal(v.ProjectSummary, bs[n:])
	n += raw.TimeUnixMicro.Marshal(v.CreatedAt, bs[n:])
	return
}

func (userProfileMUS) Unmarshal(bs []byte) (v core.UserProfile, n int, err error) {
	var n1 int
	v.UserID, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Age, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	fields := []*string{
		&v.Residency, &v.Income, &v.Gender, &v.StudentStatus,
		&v.ImmigrantStatus, &v.IndigenousStatus, &v.VeteranStatus,
	}
	for _, field := range fields {
		*field, n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	v.FundingGoalLow, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FundingGoalHigh, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.FundingPurpose, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.EligibilityTags, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ProjectSummary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	return
}

func (userProfileMUS) Size(v core.UserProfile) (size int) {
	size = ord.String.Size(v.UserID)
	size += ord.String.Size(v.Name)
	size += varint.Int.Size(v.Age)
	for _, s := range []string{
		v.Residency, v.Income, v.Gender, v.StudentStatus,
		v.ImmigrantStatus, v.IndigenousStatus, v.VeteranStatus,
	} {
		size += ord.String.Size(s)
	}
	size += varint.Int64.Size(v.FundingGoalLow)
	size += varint.Int64.Size(v.FundingGoalHigh)
	size += stringSliceMUS.Size(v.FundingPurpose)
	size += stringSliceMUS.Size(v.EligibilityTags)
	size += ord.String.Size(v.ProjectSummary)
	size += raw.TimeUnixMicro.Size(v.CreatedAt)
	return
}

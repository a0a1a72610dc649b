package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/app/models/dto"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/apperrors"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/filestorage"
)

func doc(name, data string) filestorage.Document {
	return filestorage.Document{Name: name, Data: []byte(data)}
}

func TestImportReplacesOnlyNamedCollections(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "Alex", "alex@uts.edu.au")
	f.addEvent(t, &models.Event{Title: "Lab", CreatorID: "user_001"})

	result, err := f.fixtures.Import([]filestorage.Document{
		doc("locations", `[{"id":"loc_001","name":"CB11","building":"CB11","latitude":-33.88,"longitude":151.2,"type":"lab"},
			{"id":"loc_007","name":"CB02","building":"CB02","latitude":-33.88,"longitude":151.2,"type":"classroom"}]`),
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]int{"locations": 2}, result.Collections)
	assert.Equal(t, []string{"loc_001", "loc_007"}, f.store.IDs(models.KindLocation))
	assert.Equal(t, []string{"user_001"}, f.store.IDs(models.KindUser))
	assert.Equal(t, []string{"event_001"}, f.store.IDs(models.KindEvent))
	assert.Equal(t, "loc_008", f.store.PeekID(models.KindLocation))
}

func TestImportLegacyEventsDocumentWins(t *testing.T) {
	f := newFixture(t)

	result, err := f.fixtures.Import([]filestorage.Document{
		doc("events", `[{"id":"event_001","title":"Old"}]`),
		doc("events_v2", `{"_comment":"v2","events":[{"id":"event_010","title":"New"},{"id":"event_011","title":"Newer"}]}`),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Collections["events"])
	assert.Equal(t, []string{"event_010", "event_011"}, f.store.IDs(models.KindEvent))
	assert.Equal(t, "event_012", f.store.PeekID(models.KindEvent))
}

func TestImportSkipsUnknownDocuments(t *testing.T) {
	f := newFixture(t)

	result, err := f.fixtures.Import([]filestorage.Document{
		doc("notes", `{"anything":true}`),
		doc("users", `[{"id":"user_003","name":"Alex"}]`),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"notes"}, result.Skipped)
	assert.Equal(t, map[string]int{"users": 1}, result.Collections)
}

func TestImportMalformedDocumentLeavesStoreUnchanged(t *testing.T) {
	tests := []struct {
		name   string
		docs   []filestorage.Document
		source string
	}{
		{
			name:   "invalid json",
			docs:   []filestorage.Document{doc("users", `[{"id":"user_009"}]`), doc("societies", `[{"id":`)},
			source: "societies",
		},
		{
			name:   "object without events member",
			docs:   []filestorage.Document{doc("events", `{"items":[]}`)},
			source: "events",
		},
		{
			name:   "wrong item shape",
			docs:   []filestorage.Document{doc("locations", `["CB11 00.401"]`)},
			source: "locations",
		},
		{
			name:   "object for non-event collection",
			docs:   []filestorage.Document{doc("users", `{"users":[]}`)},
			source: "users",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.addUser(t, "Alex", "alex@uts.edu.au")
			before, err := f.fixtures.Marshal(f.fixtures.ExportSnapshot())
			require.NoError(t, err)

			_, err = f.fixtures.Import(tt.docs)

			require.Error(t, err)
			assert.True(t, errors.Is(err, apperrors.ErrIngestion))
			assert.Contains(t, err.Error(), `"`+tt.source+`"`)

			after, err := f.fixtures.Marshal(f.fixtures.ExportSnapshot())
			require.NoError(t, err)
			assert.JSONEq(t, string(before), string(after))
			assert.Equal(t, "user_002", f.store.PeekID(models.KindUser))
		})
	}
}

func TestExportKindEventsWrapsComment(t *testing.T) {
	f := newFixture(t)
	f.addEvent(t, &models.Event{Title: "Lab", CreatorID: "user_001"})

	file, err := f.fixtures.ExportKind(models.KindEvent)
	require.NoError(t, err)
	assert.Equal(t, "events.json", file.Filename)

	data, err := f.fixtures.Marshal(file)
	require.NoError(t, err)

	var out struct {
		Comment string            `json:"_comment"`
		Events  []json.RawMessage `json:"events"`
	}
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Contains(t, out.Comment, "relative dates")
	assert.Len(t, out.Events, 1)
}

func TestExportKindBareArrays(t *testing.T) {
	f := newFixture(t)
	f.addUser(t, "Alex", "alex@uts.edu.au")

	tests := []struct {
		kind     models.Kind
		filename string
		count    int
	}{
		{models.KindUser, "users.json", 1},
		{models.KindPrivacy, "privacy_settings.json", 1},
		{models.KindSociety, "societies.json", 0},
		{models.KindFriendRequest, "friend_requests.json", 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			file, err := f.fixtures.ExportKind(tt.kind)
			require.NoError(t, err)
			assert.Equal(t, tt.filename, file.Filename)

			data, err := f.fixtures.Marshal(file)
			require.NoError(t, err)
			var items []json.RawMessage
			require.NoError(t, json.Unmarshal(data, &items))
			assert.Len(t, items, tt.count)
		})
	}

	_, err := f.fixtures.ExportKind(models.Kind("course"))
	assert.True(t, errors.Is(err, apperrors.ErrUnknownKind))
}

func TestExportSnapshotShape(t *testing.T) {
	f := newFixture(t)
	file := f.fixtures.ExportSnapshot()
	assert.Equal(t, "uniconnect-demo-data.json", file.Filename)

	data, err := f.fixtures.Marshal(file)
	require.NoError(t, err)
	assert.JSONEq(t, `{"users":[],"events":[],"societies":[],"locations":[],"privacy_settings":[],"friend_requests":[]}`, string(data))
	assert.Contains(t, string(data), "\n  \"users\": []")
}

func TestSnapshotRoundTrip(t *testing.T) {
	f := newFixture(t)
	_, err := f.fixtures.Import([]filestorage.Document{
		doc("users", `[{"id":"user_001","name":"Alex","email":"alex@uts.edu.au","course":"IT","year":"1st Year",
			"status":"online","isOnline":true,"friendIds":["user_002"],"avatar":"https://example.com/a.png",
			"achievements":[{"title":"First login"}]},
			{"id":"user_002","name":"Blair","email":"blair@uts.edu.au","course":"IT","year":"2nd Year","friendIds":["user_001"]}]`),
		doc("events", `{"events":[{"id":"event_004","title":"Lab","category":"academic","subType":"lab",
			"location":"loc_001","creatorId":"user_001","daysFromNow":3,"hoursFromStart":9.5,"duration":2,
			"attendeeIds":["user_002"],"color":"#ff0000"}]}`),
		doc("societies", `[{"id":"soc_001","name":"Chess","category":"social","memberCount":12,"isJoined":false}]`),
		doc("locations", `[{"id":"loc_001","name":"CB11","building":"CB11","room":null,"latitude":-33.88,"longitude":151.2,"type":"lab"}]`),
		doc("privacy_settings", `[{"id":"privacy_001","userId":"user_001","shareLocation":true}]`),
		doc("friend_requests", `[]`),
	})
	require.NoError(t, err)

	first, err := f.fixtures.Marshal(f.fixtures.ExportSnapshot())
	require.NoError(t, err)
	assert.Contains(t, string(first), `"avatar": "https://example.com/a.png"`)
	assert.Contains(t, string(first), `"color": "#ff0000"`)

	g := newFixture(t)
	result, err := g.fixtures.ImportSnapshot(first)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"users": 2, "events": 1, "societies": 1, "locations": 1, "privacy_settings": 1, "friend_requests": 0,
	}, result.Collections)

	second, err := g.fixtures.Marshal(g.fixtures.ExportSnapshot())
	require.NoError(t, err)
	assert.JSONEq(t, string(first), string(second))
	assert.Equal(t, "user_003", g.store.PeekID(models.KindUser))
}

func TestImportSnapshotRejectsNonObject(t *testing.T) {
	f := newFixture(t)
	_, err := f.fixtures.ImportSnapshot([]byte(`[1,2,3]`))
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrIngestion))
	assert.Contains(t, err.Error(), "uniconnect-demo-data.json")
}

func TestImportThenValidateReportsDanglingReferences(t *testing.T) {
	f := newFixture(t)
	_, err := f.fixtures.Import([]filestorage.Document{
		doc("events", `[{"id":"event_001","title":"Lab","category":"academic","subType":"lecture",
			"location":"Room 1","creatorId":"user_404"}]`),
	})
	require.NoError(t, err)

	report := f.validator.ValidateAll()
	assert.Equal(t, []string{
		`Event "Lab": Creator "user_404" not found`,
		`Event "Lab": User "user_404" in creatorId not found`,
	}, report.Errors)
	assert.Equal(t, dto.KindStats{Total: 1, WithErrors: 1}, report.Statistics["event"])
}

func TestImportKeepsWrongTypedValuesForTheReport(t *testing.T) {
	f := newFixture(t)
	_, err := f.fixtures.Import([]filestorage.Document{
		doc("users", `[{"id":"user_001","name":"X","email":"x@uts.edu.au","course":"IT","year":2}]`),
		doc("societies", `[{"id":"soc_001","name":"Chess","category":"social","memberCount":"12"}]`),
	})
	require.NoError(t, err)

	u, ok := f.store.User("user_001")
	require.True(t, ok)
	assert.Equal(t, "2", u.Year)

	report := f.validator.ValidateAll()
	var yearErrors []string
	for _, msg := range report.Errors {
		if strings.Contains(msg, "Invalid year value") {
			yearErrors = append(yearErrors, msg)
		}
	}
	assert.Equal(t, []string{`User "X": Invalid year value "2"`}, yearErrors)
	assert.Contains(t, report.Errors, `Society "Chess": Invalid memberCount value "12"`)

	file, err := f.fixtures.ExportKind(models.KindSociety)
	require.NoError(t, err)
	data, err := f.fixtures.Marshal(file)
	require.NoError(t, err)
	var items []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, `"12"`, string(items[0]["memberCount"]))
}

type staticSource []filestorage.Document

func (s staticSource) ReadDocuments(ctx context.Context) ([]filestorage.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

func TestImportFromSource(t *testing.T) {
	f := newFixture(t)
	src := staticSource{doc("societies", `[{"id":"soc_002","name":"Chess","category":"social"}]`)}

	result, err := f.fixtures.ImportFrom(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"societies": 1}, result.Collections)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f.fixtures.ImportFrom(ctx, src)
	assert.ErrorIs(t, err, context.Canceled)
}

package benchmarks

import (
	"encoding/json"
	"testing"

	gojson "github.com/goccy/go-json"

	"github.com/biggeezerdevelopment/voltjson"
)

var (
	smallJSON = []byte(`{"name":"John","age":30,"city":"New York"}`)

	mediumJSON = []byte(`{
		"users": [
			{"id": 1, "name": "Alice", "email": "alice@example.com", "active": true},
			{"id": 2, "name": "Bob", "email": "bob@example.com", "active": false},
			{"id": 3, "name": "Charlie", "email": "charlie@example.com", "active": true},
			{"id": 4, "name": "David", "email": "david@example.com", "active": true},
			{"id": 5, "name": "Eve", "email": "eve@example.com", "active": false}
		],
		"metadata": {
			"version": "1.0.0",
			"timestamp": 1234567890,
			"count": 5
		}
	}`)

	largeJSON []byte
)

func init() {
	// Generate large JSON (array of 1000 objects)
	largeJSON = []byte(`[`)
	for i := 0; i < 1000; i++ {
		if i > 0 {
			largeJSON = append(largeJSON, ',')
		}
		largeJSON = append(largeJSON, []byte(`{
			"id": 12345,
			"name": "User Name Here",
			"email": "user@example.com",
			"age": 25,
			"active": true,
			"tags": ["tag1", "tag2", "tag3"],
			"profile": {
				"bio": "This is a bio text",
				"location": "San Francisco, CA",
				"website": "https://example.com"
			}
		}`)...)
	}
	largeJSON = append(largeJSON, ']')
}

type SmallStruct struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
	City string `json:"city"`
}

type User struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

type Metadata struct {
	Version   string `json:"version"`
	Timestamp int64  `json:"timestamp"`
	Count     int    `json:"count"`
}

type MediumStruct struct {
	Users    []*User   `json:"users"`
	Metadata *Metadata `json:"metadata"`
}

var smallConverter = voltjson.Object(voltjson.MustPropertyMap(
	voltjson.Field("name", voltjson.String(),
		func(s *SmallStruct) string { return s.Name },
		func(s *SmallStruct, v string) { s.Name = v }),
	voltjson.Field("age", voltjson.Int[int](),
		func(s *SmallStruct) int { return s.Age },
		func(s *SmallStruct, v int) { s.Age = v }),
	voltjson.Field("city", voltjson.String(),
		func(s *SmallStruct) string { return s.City },
		func(s *SmallStruct, v string) { s.City = v }),
))

var userConverter = voltjson.Object(voltjson.MustPropertyMap(
	voltjson.Field("id", voltjson.Int[int](),
		func(u *User) int { return u.ID },
		func(u *User, v int) { u.ID = v }),
	voltjson.Field("name", voltjson.String(),
		func(u *User) string { return u.Name },
		func(u *User, v string) { u.Name = v }),
	voltjson.Field("email", voltjson.String(),
		func(u *User) string { return u.Email },
		func(u *User, v string) { u.Email = v }),
	voltjson.Field("active", voltjson.Bool(),
		func(u *User) bool { return u.Active },
		func(u *User, v bool) { u.Active = v }),
))

var metadataConverter = voltjson.Object(voltjson.MustPropertyMap(
	voltjson.Field("version", voltjson.String(),
		func(m *Metadata) string { return m.Version },
		func(m *Metadata, v string) { m.Version = v }),
	voltjson.Field("timestamp", voltjson.Int[int64](),
		func(m *Metadata) int64 { return m.Timestamp },
		func(m *Metadata, v int64) { m.Timestamp = v }),
	voltjson.Field("count", voltjson.Int[int](),
		func(m *Metadata) int { return m.Count },
		func(m *Metadata, v int) { m.Count = v }),
))

var mediumConverter = voltjson.Object(voltjson.MustPropertyMap(
	voltjson.Field[MediumStruct, []*User]("users", voltjson.Slice[*User](userConverter),
		func(m *MediumStruct) []*User { return m.Users },
		func(m *MediumStruct, v []*User) { m.Users = v }),
	voltjson.Field[MediumStruct, *Metadata]("metadata", metadataConverter,
		func(m *MediumStruct) *Metadata { return m.Metadata },
		func(m *MediumStruct, v *Metadata) { m.Metadata = v }),
))

var (
	serializer     = voltjson.New(nil)
	largeConverter = voltjson.Slice(voltjson.Map(voltjson.Raw()))
)

// Read benchmarks

func BenchmarkUnmarshalSmall_StdLib(b *testing.B) {
	var s SmallStruct
	for i := 0; i < b.N; i++ {
		_ = json.Unmarshal(smallJSON, &s)
	}
}

func BenchmarkUnmarshalSmall_GoJSON(b *testing.B) {
	var s SmallStruct
	for i := 0; i < b.N; i++ {
		_ = gojson.Unmarshal(smallJSON, &s)
	}
}

func BenchmarkUnmarshalSmall_VoltJSON(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = voltjson.ReadWith(serializer, smallConverter, smallJSON)
	}
}

func BenchmarkUnmarshalMedium_StdLib(b *testing.B) {
	var m MediumStruct
	for i := 0; i < b.N; i++ {
		_ = json.Unmarshal(mediumJSON, &m)
	}
}

func BenchmarkUnmarshalMedium_GoJSON(b *testing.B) {
	var m MediumStruct
	for i := 0; i < b.N; i++ {
		_ = gojson.Unmarshal(mediumJSON, &m)
	}
}

func BenchmarkUnmarshalMedium_VoltJSON(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = voltjson.ReadWith(serializer, mediumConverter, mediumJSON)
	}
}

func BenchmarkUnmarshalLarge_StdLib(b *testing.B) {
	var data []map[string]json.RawMessage
	b.SetBytes(int64(len(largeJSON)))
	for i := 0; i < b.N; i++ {
		_ = json.Unmarshal(largeJSON, &data)
	}
}

func BenchmarkUnmarshalLarge_GoJSON(b *testing.B) {
	var data []map[string]gojson.RawMessage
	b.SetBytes(int64(len(largeJSON)))
	for i := 0; i < b.N; i++ {
		_ = gojson.Unmarshal(largeJSON, &data)
	}
}

func BenchmarkUnmarshalLarge_VoltJSON(b *testing.B) {
	b.SetBytes(int64(len(largeJSON)))
	for i := 0; i < b.N; i++ {
		_, _ = voltjson.ReadWith(serializer, largeConverter, largeJSON)
	}
}

// Write benchmarks

func BenchmarkMarshalSmall_StdLib(b *testing.B) {
	s := SmallStruct{Name: "John", Age: 30, City: "New York"}
	for i := 0; i < b.N; i++ {
		_, _ = json.Marshal(s)
	}
}

func BenchmarkMarshalSmall_GoJSON(b *testing.B) {
	s := SmallStruct{Name: "John", Age: 30, City: "New York"}
	for i := 0; i < b.N; i++ {
		_, _ = gojson.Marshal(s)
	}
}

func BenchmarkMarshalSmall_VoltJSON(b *testing.B) {
	s := &SmallStruct{Name: "John", Age: 30, City: "New York"}
	for i := 0; i < b.N; i++ {
		out, err := voltjson.WriteWith(serializer, smallConverter, s)
		if err == nil {
			out.Release()
		}
	}
}

func BenchmarkMarshalMedium_StdLib(b *testing.B) {
	var m MediumStruct
	_ = json.Unmarshal(mediumJSON, &m)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = json.Marshal(m)
	}
}

func BenchmarkMarshalMedium_GoJSON(b *testing.B) {
	var m MediumStruct
	_ = gojson.Unmarshal(mediumJSON, &m)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_, _ = gojson.Marshal(m)
	}
}

func BenchmarkMarshalMedium_VoltJSON(b *testing.B) {
	m, err := voltjson.ReadWith(serializer, mediumConverter, mediumJSON)
	if err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		out, err := voltjson.WriteWith(serializer, mediumConverter, m)
		if err == nil {
			out.Release()
		}
	}
}

// Validation benchmarks

func BenchmarkValidateSmall_StdLib(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = json.Valid(smallJSON)
	}
}

func BenchmarkValidateSmall_GoJSON(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = gojson.Valid(smallJSON)
	}
}

func BenchmarkValidateSmall_VoltJSON(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = voltjson.Valid(smallJSON)
	}
}

func BenchmarkValidateLarge_StdLib(b *testing.B) {
	b.SetBytes(int64(len(largeJSON)))
	for i := 0; i < b.N; i++ {
		_ = json.Valid(largeJSON)
	}
}

func BenchmarkValidateLarge_GoJSON(b *testing.B) {
	b.SetBytes(int64(len(largeJSON)))
	for i := 0; i < b.N; i++ {
		_ = gojson.Valid(largeJSON)
	}
}

func BenchmarkValidateLarge_VoltJSON(b *testing.B) {
	b.SetBytes(int64(len(largeJSON)))
	for i := 0; i < b.N; i++ {
		_ = voltjson.Valid(largeJSON)
	}
}

// TestBenchmarkFixtures keeps the fixtures above decodable, so a broken
// converter shows up as a failure instead of a fast benchmark.
func TestBenchmarkFixtures(t *testing.T) {
	var want MediumStruct
	if err := json.Unmarshal(mediumJSON, &want); err != nil {
		t.Fatal(err)
	}
	got, err := voltjson.ReadWith(serializer, mediumConverter, mediumJSON)
	if err != nil {
		t.Fatal(err)
	}
	if len(got.Users) != len(want.Users) || *got.Metadata != *want.Metadata || *got.Users[4] != *want.Users[4] {
		t.Errorf("medium fixture decoded to %+v", got)
	}

	large, err := voltjson.ReadWith(serializer, largeConverter, largeJSON)
	if err != nil {
		t.Fatal(err)
	}
	if len(large) != 1000 || string(large[999]["age"]) != "25" {
		t.Errorf("large fixture decoded to %d elements", len(large))
	}

	if _, err := voltjson.ReadWith(serializer, smallConverter, smallJSON); err != nil {
		t.Fatal(err)
	}
}

package services

import (
	"reflect"
	"testing"

	"detaildesk-backend/models"

	"github.com/google/uuid"
)

func TestComputeLookupKeys(t *testing.T) {
	client := NormalizeClient(models.Client{
		FullName: "Jane Doe",
		Phone:    "(555) 123-4567",
		Email:    "jane@example.com",
		Zip:      "78704",
	})

	want := []string{
		"phone:+15551234567",
		"email:jane@example.com",
		"name:jane-doe",
		"namezip:jane-doe|78704",
	}
	if !reflect.DeepEqual([]string(client.LookupKeys), want) {
		t.Errorf("lookup keys = %v, want %v", client.LookupKeys, want)
	}
}

func TestComputeLookupKeysSkipsMissingComponents(t *testing.T) {
	client := NormalizeClient(models.Client{FullName: "Jane Doe"})
	want := []string{"name:jane-doe"}
	if !reflect.DeepEqual([]string(client.LookupKeys), want) {
		t.Errorf("lookup keys = %v, want %v", client.LookupKeys, want)
	}

	empty := models.Client{}
	if keys := ComputeLookupKeys(&empty); len(keys) != 0 {
		t.Errorf("empty client produced keys %v", keys)
	}
}

func TestComputeLookupKeysIdempotent(t *testing.T) {
	client := NormalizeClient(models.Client{
		FullName: "Jane Doe", Phone: "5551234567", Zip: "78704",
	})
	again := NormalizeClient(client)
	if !reflect.DeepEqual(client.LookupKeys, again.LookupKeys) {
		t.Errorf("keys changed on re-normalize: %v vs %v", client.LookupKeys, again.LookupKeys)
	}
}

func TestBuildLookupIndexFirstWins(t *testing.T) {
	roster := []models.Client{
		NormalizeClient(models.Client{ID: uuid.New(), FullName: "Jane Doe", Phone: "5551234567"}),
		NormalizeClient(models.Client{ID: uuid.New(), FullName: "Jane Doe", Email: "jane@example.com"}),
	}
	index := BuildLookupIndex(roster)

	// Both share "name:jane-doe"; the earlier record keeps it.
	match := index.FindMatch([]string{"name:jane-doe"})
	if match == nil || match.ID != roster[0].ID {
		t.Errorf("name collision resolved to wrong client")
	}

	// The second record is still reachable by its unique key.
	match = index.FindMatch([]string{"email:jane@example.com"})
	if match == nil || match.ID != roster[1].ID {
		t.Errorf("unique key did not resolve")
	}
}

func TestFindMatchKeyOrder(t *testing.T) {
	phoneOwner := NormalizeClient(models.Client{ID: uuid.New(), FullName: "Alpha One", Phone: "5551234567"})
	nameOwner := NormalizeClient(models.Client{ID: uuid.New(), FullName: "Jane Doe", Email: "other@example.com"})
	index := BuildLookupIndex([]models.Client{phoneOwner, nameOwner})

	// Phone key is checked before the name key.
	match := index.FindMatch([]string{"phone:+15551234567", "name:jane-doe"})
	if match == nil || match.ID != phoneOwner.ID {
		t.Error("match did not honor key order")
	}

	if index.FindMatch([]string{"phone:+19998887777"}) != nil {
		t.Error("unknown key matched")
	}
	if index.FindMatch(nil) != nil {
		t.Error("nil keys matched")
	}
}

func TestPutOverwrites(t *testing.T) {
	first := NormalizeClient(models.Client{ID: uuid.New(), FullName: "Jane Doe"})
	index := BuildLookupIndex([]models.Client{first})

	second := NormalizeClient(models.Client{ID: uuid.New(), FullName: "Jane Doe", Phone: "5551234567"})
	index.Put(&second)

	match := index.FindMatch([]string{"name:jane-doe"})
	if match == nil || match.ID != second.ID {
		t.Error("Put did not overwrite the existing mapping")
	}
}

//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Hub codes seeded into every test database.
const (
	HubOrigin = "BLR"
	HubDest   = "DEL"
	HubOther  = "BOM"
)

// HubID looks up a seeded hub by code.
func HubID(t *testing.T, db DBLike, code string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(), "SELECT id FROM hubs WHERE code = $1", code).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateTestStaff(t *testing.T, db DBLike, email, role string) uuid.UUID {
	t.Helper()

	staffID := uuid.New()
	hubID := HubID(t, db, HubOrigin)

	ctx := context.Background()
	tag, err := db.Exec(ctx, "INSERT INTO staff (id, email, name, role, hub_id) VALUES ($1, $2, $3, $4, $5) ON CONFLICT (email) DO NOTHING",
		staffID, email, "Test Staff", role, hubID)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM staff WHERE email = $1", email).Scan(&staffID)
	}

	return staffID
}

// ShipmentFixture describes a shipment to insert. Zero values fall back
// to an attachable shipment bound for the seeded destination hub.
type ShipmentFixture struct {
	AWB           string
	Status        string
	OriginHubCode string
	DestHubCode   string
	PackageCount  int32
	TotalWeight   float64
	CODAmount     *float64
	ConsigneeName string
}

func CreateTestShipment(t *testing.T, db DBLike, f ShipmentFixture) uuid.UUID {
	t.Helper()

	if f.Status == "" {
		f.Status = "RECEIVED"
	}
	if f.OriginHubCode == "" {
		f.OriginHubCode = HubOrigin
	}
	if f.DestHubCode == "" {
		f.DestHubCode = HubDest
	}
	if f.PackageCount == 0 {
		f.PackageCount = 1
	}
	if f.ConsigneeName == "" {
		f.ConsigneeName = "Asha Traders"
	}

	shipmentID := uuid.New()
	originID := HubID(t, db, f.OriginHubCode)
	destID := HubID(t, db, f.DestHubCode)

	_, err := db.Exec(context.Background(), `
		INSERT INTO shipments (id, awb, status, origin_hub_id, destination_hub_id,
		                       package_count, total_weight, cod_amount, consignee_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		shipmentID, f.AWB, f.Status, originID, destID,
		f.PackageCount, f.TotalWeight, f.CODAmount, f.ConsigneeName)
	require.NoError(t, err)

	return shipmentID
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO hubs (id, code, name, city) VALUES
		    (gen_random_uuid(), 'BLR', 'Bengaluru Hub', 'Bengaluru'),
		    (gen_random_uuid(), 'DEL', 'Delhi Hub', 'Delhi'),
		    (gen_random_uuid(), 'BOM', 'Mumbai Hub', 'Mumbai')
		ON CONFLICT (code) DO NOTHING;
	`)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}

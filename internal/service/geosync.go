package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/telfield/telfield/internal/diff"
	"github.com/telfield/telfield/internal/domain"
)

// geoSync keeps a task's location fields in step with the base-station
// registry. Lookup and upsert failures are logged and swallowed: geo data is
// enrichment, never a reason to fail the primary mutation.
type geoSync struct {
	stations StationDirectory
}

// resolveLocation rewrites the patch's location fields before diffing, but
// only when the station number changed or the caller touched the location
// list. Resolution order: registry entry wins, then the caller's explicit
// points, otherwise the list is cleared. Latitude/longitude follow the same
// trigger and are never touched on unrelated edits.
func (g *geoSync) resolveLocation(ctx context.Context, task *domain.Task, patch *domain.TaskPatch, project *domain.Project) {
	stationChanged := false
	number := task.StationNumber
	if patch.Has(domain.FieldStationNumber) {
		proposed, _ := patch.Value(domain.FieldStationNumber).(string)
		proposed = strings.TrimSpace(proposed)
		if proposed != "" && proposed != task.StationNumber {
			stationChanged = true
			number = proposed
		}
	}

	pointsTouched := patch.Has(domain.FieldPoints)
	if !stationChanged && !pointsTouched {
		return
	}

	station, err := g.stations.FindByNumber(ctx, number, project.Operator, project.Region)
	if err == nil {
		g.applyStation(patch, station)
		return
	}
	if !errors.Is(err, domain.ErrStationNotFound) {
		slog.Warn("station registry lookup failed",
			"station_number", number,
			"error", err,
		)
	}

	// No registry entry: keep the caller's explicit points, or clear.
	if pts, ok := patch.Value(domain.FieldPoints).([]domain.LocationPoint); ok && len(pts) > 0 {
		g.applyPoints(patch, pts)
		return
	}
	patch.Clear(domain.FieldPoints)
	patch.Clear(domain.FieldLatitude)
	patch.Clear(domain.FieldLongitude)
}

// applyStation makes the registry entry the authoritative point.
func (g *geoSync) applyStation(patch *domain.TaskPatch, station *domain.Station) {
	point := domain.LocationPoint{
		Name:    station.Number,
		Address: station.Address,
	}
	if station.HasCoordinates() {
		point.Coordinates = formatCoordinates(*station.Latitude, *station.Longitude)
		patch.Set(domain.FieldLatitude, diff.Round6(*station.Latitude))
		patch.Set(domain.FieldLongitude, diff.Round6(*station.Longitude))
	} else {
		patch.Clear(domain.FieldLatitude)
		patch.Clear(domain.FieldLongitude)
	}
	patch.Set(domain.FieldPoints, []domain.LocationPoint{point})
}

// applyPoints keeps the caller's points verbatim and derives the scalar
// coordinates from the first parseable point.
func (g *geoSync) applyPoints(patch *domain.TaskPatch, pts []domain.LocationPoint) {
	patch.Set(domain.FieldPoints, pts)
	for _, pt := range pts {
		if lat, lon, ok := diff.ParseCoordinates(pt.Coordinates); ok {
			patch.Set(domain.FieldLatitude, lat)
			patch.Set(domain.FieldLongitude, lon)
			return
		}
	}
	patch.Clear(domain.FieldLatitude)
	patch.Clear(domain.FieldLongitude)
}

// syncStation requests a registry upsert after the primary write succeeded.
// Failures are logged and dropped, never propagated and never retried.
func (g *geoSync) syncStation(ctx context.Context, task *domain.Task, project *domain.Project) {
	station := &domain.Station{
		Number:    task.StationNumber,
		Operator:  project.Operator,
		Region:    project.Region,
		Address:   task.StationAddress,
		Latitude:  task.Latitude,
		Longitude: task.Longitude,
	}
	if err := g.stations.Upsert(ctx, station); err != nil {
		slog.Error("station registry sync failed",
			"task_id", task.ID,
			"station_number", task.StationNumber,
			"error", err,
		)
		return
	}
	slog.Info("station registry synced",
		"task_id", task.ID,
		"station_number", task.StationNumber,
	)
}

func formatCoordinates(lat, lon float64) string {
	return strconv.FormatFloat(diff.Round6(lat), 'f', -1, 64) +
		" " +
		strconv.FormatFloat(diff.Round6(lon), 'f', -1, 64)
}

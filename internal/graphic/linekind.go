package graphic

import (
	"errors"
	"strings"
)

// LineKind identifies the symbol or line category of a graphic. Only a few
// properties of a kind matter here: whether it is a closed area and whether it
// carries a separate fill beneath its outline.
type LineKind int

const (
	KindUnknown LineKind = iota

	// open lines
	KindPolyline
	KindBoundary
	KindPhaseLine
	KindLimitOfAdvance
	KindForwardLineOfTroops
	KindAxisOfAdvance
	KindDirectionOfAttack
	KindAmbush
	KindMinimumSafeDistance
	KindAntiTankDitch
	KindAntiTankWall
	KindWireFence
	KindDoubleApron
	KindTripleStrandConcertina
	KindLinearObstacle
	KindFortifiedLine
	KindRoadblock
	KindArc

	// closed areas
	KindGeneralArea
	KindAssemblyArea
	KindEngagementArea
	KindTargetArea
	KindAirspaceCoordinationArea
	KindRestrictedOperationsZone
	KindCircle
	KindEllipse
	KindRangeFan
	KindSector

	// closed areas with a separate fill
	KindObstacleBelt
	KindObstacleZone
	KindObstacleRestrictedArea
	KindObstacleFreeArea
	KindMinefield
	KindMinedArea
	KindFortifiedArea
	KindAbatis
	KindStrongPoint
)

var ErrUnknownLineKind = errors.New("graphic: unknown line kind")

var kindNames = map[LineKind]string{
	KindUnknown:                  "unknown",
	KindPolyline:                 "polyline",
	KindBoundary:                 "boundary",
	KindPhaseLine:                "phase_line",
	KindLimitOfAdvance:           "limit_of_advance",
	KindForwardLineOfTroops:      "forward_line_of_troops",
	KindAxisOfAdvance:            "axis_of_advance",
	KindDirectionOfAttack:        "direction_of_attack",
	KindAmbush:                   "ambush",
	KindMinimumSafeDistance:      "minimum_safe_distance",
	KindAntiTankDitch:            "anti_tank_ditch",
	KindAntiTankWall:             "anti_tank_wall",
	KindWireFence:                "wire_fence",
	KindDoubleApron:              "double_apron",
	KindTripleStrandConcertina:   "triple_strand_concertina",
	KindLinearObstacle:           "linear_obstacle",
	KindFortifiedLine:            "fortified_line",
	KindRoadblock:                "roadblock",
	KindArc:                      "arc",
	KindGeneralArea:              "general_area",
	KindAssemblyArea:             "assembly_area",
	KindEngagementArea:           "engagement_area",
	KindTargetArea:               "target_area",
	KindAirspaceCoordinationArea: "airspace_coordination_area",
	KindRestrictedOperationsZone: "restricted_operations_zone",
	KindCircle:                   "circle",
	KindEllipse:                  "ellipse",
	KindRangeFan:                 "range_fan",
	KindSector:                   "sector",
	KindObstacleBelt:             "obstacle_belt",
	KindObstacleZone:             "obstacle_zone",
	KindObstacleRestrictedArea:   "obstacle_restricted_area",
	KindObstacleFreeArea:         "obstacle_free_area",
	KindMinefield:                "minefield",
	KindMinedArea:                "mined_area",
	KindFortifiedArea:            "fortified_area",
	KindAbatis:                   "abatis",
	KindStrongPoint:              "strong_point",
}

var kindsByName = func() map[string]LineKind {
	m := make(map[string]LineKind, len(kindNames))
	for k, n := range kindNames {
		m[n] = k
	}
	return m
}()

func (k LineKind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "unknown"
}

// ParseLineKind maps a name such as "phase_line" or "Phase Line" to its kind.
func ParseLineKind(s string) (LineKind, error) {
	n := strings.ToLower(strings.TrimSpace(s))
	n = strings.NewReplacer(" ", "_", "-", "_").Replace(n)
	if k, ok := kindsByName[n]; ok {
		return k, nil
	}
	return KindUnknown, ErrUnknownLineKind
}

// IsClosed reports whether graphics of this kind describe a closed region.
func (k LineKind) IsClosed() bool {
	return k >= KindGeneralArea
}

// NeedsFill reports whether the kind renders a separately clipped fill shape
// beneath its outline.
func (k LineKind) NeedsFill() bool {
	switch k {
	case KindObstacleBelt, KindObstacleZone, KindObstacleRestrictedArea,
		KindObstacleFreeArea, KindMinefield, KindMinedArea,
		KindFortifiedArea, KindAbatis, KindStrongPoint:
		return true
	}
	return false
}

package cache

import "delivery-planner/internal/domain"

// legKey identifies a leg by the textual coordinates of both ends.
func legKey(prefix string, from, to domain.Coordinate) string {
	return prefix + from.LatText + "," + from.LonText + "->" + to.LatText + "," + to.LonText
}

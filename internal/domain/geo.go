package domain

// GeoPoint - географическая точка (широта/долгота)
type GeoPoint struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// BoundingBox - прямоугольник правдоподобия для результатов геокодирования
type BoundingBox struct {
	MinLat float64 `json:"min_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLat float64 `json:"max_lat"`
	MaxLon float64 `json:"max_lon"`
}

// Contains проверяет, лежит ли точка внутри прямоугольника
func (b BoundingBox) Contains(p GeoPoint) bool {
	return p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// RegionBias - региональная подсказка для геокодера.
// CountryHint добавляется к запросу, Bias* смещают ранжирование,
// Bounds отсекает совпадения в чужой стране с тем же названием.
type RegionBias struct {
	CountryHint string
	BiasLat     float64
	BiasLon     float64
	Bounds      BoundingBox
}

// LocationPair - пара подача/высадка для одного маршрута.
// Сторона задаётся либо готовой точкой, либо названием места.
type LocationPair struct {
	PickupLabel string    `json:"pickup_label,omitempty"`
	PickupPoint *GeoPoint `json:"pickup_point,omitempty"`
	DropLabel   string    `json:"drop_label,omitempty"`
	DropPoint   *GeoPoint `json:"drop_point,omitempty"`
}

// RouteResult - маршрут между двумя точками.
// IsApproximate = true означает straight-line fallback вместо дорожного маршрута.
type RouteResult struct {
	Path            []GeoPoint `json:"path"`
	DistanceKm      float64    `json:"distance_km"`
	DurationMinutes int        `json:"duration_minutes"`
	IsApproximate   bool       `json:"is_approximate"`
}

// BatchEntry - успешно разрешённая пара с маршрутом.
// Index - позиция пары во входном списке (пропуски сохраняют исходный порядок).
// Pickup/Drop хранятся отдельно, чтобы у маркеров всегда были координаты.
type BatchEntry struct {
	Index  int          `json:"index"`
	Pair   LocationPair `json:"pair"`
	Pickup GeoPoint     `json:"pickup"`
	Drop   GeoPoint     `json:"drop"`
	Route  RouteResult  `json:"route"`
}

// BatchMeta - счётчики обработки батча
type BatchMeta struct {
	TotalPairs        int `json:"total_pairs"`
	ResolvedPairs     int `json:"resolved_pairs"`
	SkippedPairs      int `json:"skipped_pairs"`
	ApproximateRoutes int `json:"approximate_routes"`
}

// BatchResult - результат разрешения батча пар.
// Entries сохраняют порядок входных пар; пропущенные пары попадают в Warnings.
type BatchResult struct {
	Entries        []BatchEntry `json:"entries"`
	BoundingPoints []GeoPoint   `json:"bounding_points"`
	Warnings       []string     `json:"warnings,omitempty"`
	Meta           BatchMeta    `json:"meta"`
}

// Package docs RouteFare Microservice API.
//
// Микросервис разрешения маршрутов и расчёта стоимости поездок.
// Разрешает названия мест в координаты, строит дорожные маршруты
// и считает стоимость по тарифу поездки.
//
// Основные возможности:
// - Геокодирование названий мест с региональной проверкой результатов
// - Дорожные маршруты и дистанции с прямолинейным fallback
// - Расчёт стоимости поездки по дистанции и числу мест
// - Пакетное разрешение пар подача/высадка (синхронно и асинхронно)
// - Статистика по журналу расчётов
//
//	Schemes: http, https
//	BasePath: /
//	Version: 1.0.0
//
//	Consumes:
//	- application/json
//
//	Produces:
//	- application/json
//
// swagger:meta
package docs

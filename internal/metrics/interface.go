package metrics

import "time"

// Interface определяет интерфейс для системы метрик
type Interface interface {
	// RecordRequest записывает обработанный HTTP запрос
	RecordRequest(status int, duration time.Duration)

	// RecordCafeAdded записывает добавление кафе
	RecordCafeAdded()

	// RecordCafeClosed записывает удаление закрытого кафе
	RecordCafeClosed()

	// RecordPriceUpdate записывает обновление цены
	RecordPriceUpdate()

	// RecordError записывает ошибку
	RecordError()

	// GetStats возвращает все метрики в виде map
	GetStats() map[string]interface{}
}

// Package scheduling вычисляет слоты записи и цены по акциям.
//
// Пакет чистый: он получает расписание салона, записи и акции от вызывающего
// кода и ничего не сохраняет. Проверка доступности здесь рекомендательная,
// окончательно занятость слота проверяет уникальный индекс в базе.
package scheduling

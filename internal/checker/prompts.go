package checker

import (
	"fmt"
	"time"
)

// correctionPromptTemplate instructs the model to fix grammar and gender
// endings while leaving spelling mistakes in place. Dates are needed to catch
// seasonal mismatches (a summer review mentioning New Year trees).
const correctionPromptTemplate = `Ты профессиональный редактор отзывов. Задача проверить отзыв согласно входным данным.
ВХОДНЫЕ ДАННЫЕ:
Текст отзыва: "%s"
Текущий пол: %s
Текущая дата: %s
ЗАДАЧИ ПРОВЕРКИ:
ОПРЕДЕЛЕНИЕ И КОРРЕКТИРОВКА ПОЛА
Исправить пол и окончания, если:
Текст написан преимущественно от женского лица + указан "М" → изменить пол на "Ж" + скорректировать окончания (м→ж)
Текст написан преимущественно от мужского лица + указан "Ж" → изменить пол на "М" + скорректировать окончания (ж→м)
В спорных случаях (признаков м/ж примерно поровну):
Оставить текущий пол без изменений
Скорректировать окончания под текущий пол
Оставить как есть, если:
Пол соответствует тексту
Отзыв в нейтральном множественном числе ("обращались", "заказывали", "довольны") — это отзывы от компаний, пол "Н"
КОРРЕКТИРОВКА ТЕКСТА
Что ИСПРАВЛЯТЬ:
Грамматические ошибки (падежи, согласования, времена)
Логические несоответствия времени года/сезона/праздников относительно текущей даты (осень + 8 марта, лето + ёлки к НГ, зима + выпускной)
Что НЕ ТРОГАТЬ:
Опечатки и орфографические ошибки (сохранять как есть)
Стиль, тон и структуру отзыва
ФОРМАТ ВЫДАЧИ:
{ "text": "исправленный текст отзыва (или оригинал, если не требовалось правок)", "gender": "М/Ж/Н" }`

// spellingPromptTemplate instructs the model to wrap each wrong letter in
// double square brackets without fixing anything.
const spellingPromptTemplate = `Ты профессиональный корректор текстов. Твоя задача — найти ВСЕ орфографические ошибки в тексте и пометить ТОЛЬКО неправильные буквы.

ТЕКСТ ДЛЯ ПРОВЕРКИ:
"%s"

ЗАДАЧА:
Найди все орфографические ошибки и опечатки в тексте.
Заключи КАЖДУЮ неправильную букву в двойные квадратные скобки [[]].

ПРАВИЛА РАЗМЕТКИ:
1. Неправильная буква → заключить в [[]]
   "малоко" → "м[[а]]локо" (неправильная "а" вместо "о")

2. Лишняя буква → заключить в [[]]
   "крассивый" → "крас[[с]]ивый" (удвоенная "с" лишняя, помечаем лишнюю "с")

3. Недостающая буква → пометить букву, после которой она должна быть
   "металический" → "мета[[л]]ический" (не хватает "л", добавлять недостающую букву нельзя!)

ЧТО НЕ ПОМЕЧАТЬ:
- Букву "е" вместо "ё" (это не ошибка)
- Грамматические окончания (это не орфографические ошибки)

ВАЖНО: Верни ТОЛЬКО текст с пометками. Никаких дополнительных объяснений или комментариев.`

// correctionPrompt renders the correction prompt for one review.
func correctionPrompt(text, gender string, now time.Time) string {
	return fmt.Sprintf(correctionPromptTemplate, text, gender, now.Format("02.01.2006"))
}

// spellingPrompt renders the spelling annotation prompt.
func spellingPrompt(text string) string {
	return fmt.Sprintf(spellingPromptTemplate, text)
}

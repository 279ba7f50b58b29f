package flow

// User-facing message texts. Kept in one place so tests can assert on them.
const (
	msgGreeting = "Привіт! Я твій персональний бот-трекер. 🤖\n" +
		"Я допоможу тобі стежити за настроєм, витратами та іншими важливими речами."

	msgMoodPrompt    = "Як твій настрій сьогодні? 😊 / 😞"
	msgMoodSaved     = "Настрій записано! 👌"
	msgMoodUseButton = "Обери настрій кнопкою 😊 / 😞"

	msgMileagePrompt   = "Введи пробіг за сьогодні (км). Якщо 0 — пропусти."
	msgMileageNegative = "Пробіг не може бути від'ємним. Спробуй ще раз."
	msgMileageSkipped  = "Пробіг не змінено."
	msgOilAdvisory     = " ⚠️ Час перевірити масло!"

	msgCategoryPrompt = "Оберіть категорію витрати:"
	msgAmountPrompt   = "Введи суму в €."
	msgInvalidAmount  = "Будь ласка, введи коректне число (більше 0)."

	msgSalaryPrompt        = "Скільки прийшло на карту? Введи суму в €."
	msgSalaryInvalidAmount = "Будь ласка, введи коректне число (0 або більше)."

	msgEnterNumber = "Будь ласка, введи число."
	msgNotExpected = "Не зрозумів. Скористайся меню 🙂"
)

// Package i18n holds the user-facing strings shown in notifications.
package i18n

// Supported languages.
const (
	Russian = "ru"
	English = "en"
)

// Default is the language used when a profile has not chosen one.
const Default = Russian

// Key identifies a message.
type Key string

const (
	RegisterOK         Key = "register_ok"
	DuplicateEmail     Key = "duplicate_email"
	LoginOK            Key = "login_ok"
	InvalidCredentials Key = "invalid_credentials"
	LogoutOK           Key = "logout_ok"
	PasswordMismatch   Key = "password_mismatch"
	PasswordTooShort   Key = "password_too_short"
	FieldsRequired     Key = "fields_required"
	LoginRequired      Key = "login_required"
	TradingLaunch      Key = "trading_launch"
	DemoActivated      Key = "demo_activated"
)

var catalog = map[string]map[Key]string{
	Russian: {
		RegisterOK:         "Регистрация успешна!",
		DuplicateEmail:     "Пользователь с таким email уже существует",
		LoginOK:            "Вход выполнен успешно!",
		InvalidCredentials: "Неверный email или пароль",
		LogoutOK:           "Выход выполнен успешно!",
		PasswordMismatch:   "Пароли не совпадают!",
		PasswordTooShort:   "Пароль должен содержать минимум 6 символов",
		FieldsRequired:     "Заполните все поля",
		LoginRequired:      "Войдите, чтобы начать торговлю",
		TradingLaunch:      "🚀 Запуск торгового терминала...",
		DemoActivated:      "🎮 Демо-счет активирован!",
	},
	English: {
		RegisterOK:         "Registration successful!",
		DuplicateEmail:     "A user with this email already exists",
		LoginOK:            "Signed in successfully!",
		InvalidCredentials: "Invalid email or password",
		LogoutOK:           "Signed out successfully!",
		PasswordMismatch:   "Passwords do not match!",
		PasswordTooShort:   "Password must be at least 6 characters",
		FieldsRequired:     "Please fill in all fields",
		LoginRequired:      "Sign in to start trading",
		TradingLaunch:      "🚀 Launching trading terminal...",
		DemoActivated:      "🎮 Demo account activated!",
	},
}

// Supported reports whether lang has a catalog.
func Supported(lang string) bool {
	_, ok := catalog[lang]
	return ok
}

// Text returns the message for key in lang, falling back to English and then to the key itself.
func Text(lang string, key Key) string {
	if msgs, ok := catalog[lang]; ok {
		if s, ok := msgs[key]; ok {
			return s
		}
	}
	if s, ok := catalog[English][key]; ok {
		return s
	}
	return string(key)
}

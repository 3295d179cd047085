package validation

// Supported message languages
const (
	LangZH = "zh"
	LangEN = "en"
)

type messages struct {
	required string
	invalid  map[string]string
}

var catalog = map[string]messages{
	LangZH: {
		required: "此项为必填项",
		invalid: map[string]string{
			"phone":     "请输入有效的手机号码",
			"hostPhone": "请输入有效的手机号码",
			"idNumber":  "请输入有效的身份证号码",
			"carNumber": "请输入有效的车牌号",
		},
	},
	LangEN: {
		required: "This field is required",
		invalid: map[string]string{
			"phone":     "Please enter a valid phone number",
			"hostPhone": "Please enter a valid host phone number",
			"idNumber":  "Please enter a valid ID number",
			"carNumber": "Please enter a valid car plate number",
		},
	},
}

// messagesFor falls back to Chinese, the form's default language.
func messagesFor(lang string) messages {
	if m, ok := catalog[lang]; ok {
		return m
	}
	return catalog[LangZH]
}

// Package catalog holds the fixed questionnaire: the ordered question list,
// option sets, and conditional-visibility rules. Content is read-only at
// runtime and seeds the store on first boot.
package catalog

import (
	"fmt"
	"sort"

	"github.com/andy00614/sury-questions/internal/model"
)

// Question ids referenced by visibility rules and the dashboard
const (
	AIAwarenessQuestionID  = 1
	DeviceQuestionID       = 4
	AndroidPriceQuestionID = 6
	AgeQuestionID          = 12
	MaritalQuestionID      = 13
)

// DeviceAndroid is the device answer that makes the Android price question relevant
const DeviceAndroid = "android"

// Questions returns the catalog in display order (sort key, then id). The
// returned slice is a fresh copy; callers may attach answers freely.
func Questions() []model.Question {
	out := make([]model.Question, len(questions))
	copy(out, questions)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ByID looks a question up by its stable id
func ByID(id int) (model.Question, bool) {
	for _, q := range questions {
		if q.ID == id {
			return q, true
		}
	}
	return model.Question{}, false
}

// Validate checks the catalog invariants: choice questions carry a non-empty
// option set, text questions carry none, and option values are unique within
// each question. Run by tests and at seed time.
func Validate() error {
	for _, q := range questions {
		if q.HasOptions() && len(q.Options) == 0 {
			return fmt.Errorf("question %d: type %s requires options", q.ID, q.Type)
		}
		if !q.HasOptions() && len(q.Options) > 0 {
			return fmt.Errorf("question %d: type %s must not carry options", q.ID, q.Type)
		}
		seen := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			if seen[opt.Value] {
				return fmt.Errorf("question %d: duplicate option value %q", q.ID, opt.Value)
			}
			seen[opt.Value] = true
		}
	}
	return nil
}

// androidOnly is the one shipped visibility rule: the Android price range
// question applies only to respondents who picked an Android device.
func androidOnly(answers model.AnswerSet) bool {
	v, ok := answers.Get(DeviceQuestionID)
	return ok && !v.IsMultiple() && v.Value() == DeviceAndroid
}

func q(id int, section, sectionEn, text, textEn string, qt model.QuestionType, required bool, opts ...model.Option) model.Question {
	for i := range opts {
		opts[i].QuestionID = id
		opts[i].SortOrder = i + 1
	}
	return model.Question{
		ID:        id,
		Section:   section,
		SectionEn: sectionEn,
		Text:      text,
		TextEn:    textEn,
		Type:      qt,
		Required:  required,
		SortOrder: id,
		Options:   opts,
	}
}

func opt(value, label, labelEn string) model.Option {
	return model.Option{Value: value, Label: label, LabelEn: labelEn}
}

var questions = buildQuestions()

func buildQuestions() []model.Question {
	qs := []model.Question{
		q(1, "AI Agent 接受程度", "AI Agent Acceptance",
			"您是否听说过 ChatGPT 或其他 AI 助手（如 Copilot、Gemini 等）？",
			"Have you heard of ChatGPT or other AI assistants (e.g., Copilot, Gemini)?",
			model.QuestionTypeSingle, true,
			opt("heard_used", "听说过并使用", "Heard and used"),
			opt("heard_not_used", "听说过但没用过", "Heard but never used"),
			opt("never_heard", "没听说过", "Never heard"),
		),
		q(2, "AI Agent 接受程度", "AI Agent Acceptance",
			"如果您用过 AI 助手，您使用它的主要目的是什么？（可多选）",
			"If you have used an AI assistant, what is your main purpose? (Select all that apply)",
			model.QuestionTypeMultiple, false,
			opt("work_study", "工作/学习", "Work/ Study"),
			opt("entertainment", "娱乐/消遣", "Entertainment"),
			opt("practical", "生活实用（如查资料、翻译、写作等）", "Practical use (e.g., research, translation, writing)"),
		),
		q(3, "AI Agent 接受程度", "AI Agent Acceptance",
			"您大概多久会用一次 AI 助手？",
			"How often do you use an AI assistant?",
			model.QuestionTypeSingle, true,
			opt("daily", "每天", "Daily"),
			opt("weekly", "每周", "Weekly"),
			opt("monthly", "每月", "Monthly"),
			opt("rarely", "很少/几乎不用", "Rarely/Never"),
		),
		q(4, "硬件设备与使用习惯", "Device Preferences",
			"您使用的是什么设备？",
			"What device are you using?",
			model.QuestionTypeSingle, true,
			opt("android", "安卓", "Android"),
			opt("ios", "苹果", "iOS Apple"),
		),
		q(5, "硬件设备与使用习惯", "Device Preferences",
			"您更喜欢使用哪个平台？",
			"Which platform do you prefer?",
			model.QuestionTypeSingle, true,
			opt("mobile", "手机", "Mobile"),
			opt("web", "网页版", "Web"),
		),
		q(6, "硬件设备与使用习惯", "Device Preferences",
			"如果是安卓，您的手机大致价格区间是？",
			"If Android, what is your phone's approximate price range?",
			model.QuestionTypeSingle, false,
			opt("below_300", "SGD 300 以下", "Below SGD 300"),
			opt("300_799", "SGD 300–799", "SGD 300–799"),
			opt("above_800", "SGD 800 以上", "Above SGD 800"),
		),
		q(7, "硬件设备与使用习惯", "Device Preferences",
			"您平时使用 APP 更习惯的语言是？",
			"Which language do you usually prefer for apps?",
			model.QuestionTypeSingle, true,
			opt("chinese", "中文", "Chinese"),
			opt("english", "英文", "English"),
			opt("mixed", "中英混合", "Mixed"),
		),
		q(8, "硬件设备与使用习惯", "Device Preferences",
			"在使用带有字体调节功能的 APP（例如 WhatsApp、Facebook、Telegram）时，您是否会调整字体大小？",
			"When using apps with font size adjustment (e.g., WhatsApp, Facebook, Telegram), do you adjust the font size?",
			model.QuestionTypeSingle, true,
			opt("often", "经常调整", "Often"),
			opt("sometimes", "偶尔调整", "Sometimes"),
			opt("never", "从不调整", "Never"),
		),
		q(9, "硬件设备与使用习惯", "Device Preferences",
			"对于学习类应用，你认为字体大小调整功能重要吗？",
			"For a learning app, do you think font size adjustment is important?",
			model.QuestionTypeSingle, true,
			opt("yes", "是", "Yes"),
			opt("no", "否", "No"),
		),
		q(10, "奖励系统", "Incentives & Rewards",
			"您喜欢什么类型的奖励？",
			"What kind of vouchers do you prefer?",
			model.QuestionTypeSingle, true,
			opt("food", "餐饮电子礼券", "Food E-vouchers"),
			opt("non_food", "非餐饮奖励", "Non-Food"),
		),
		q(11, "奖励系统", "Incentives & Rewards",
			"您愿意通过观看广告来获得奖励吗？",
			"Are you willing to watch ads for rewards?",
			model.QuestionTypeSingle, true,
			opt("yes", "愿意", "Yes"),
			opt("no", "不愿意", "No"),
		),
		q(12, "人物画像", "Demographics",
			"您的年龄范围是？",
			"What is your age group?",
			model.QuestionTypeSingle, true,
			opt("below_18", "18岁以下", "Below 18"),
			opt("18_24", "18–24", "18–24"),
			opt("25_34", "25–34", "25–34"),
			opt("35_44", "35–44", "35–44"),
			opt("45_54", "45–54", "45–54"),
			opt("55_above", "55岁及以上", "55 and above"),
		),
		q(13, "人物画像", "Demographics",
			"您目前的婚姻状况是？",
			"What is your current marital status?",
			model.QuestionTypeSingle, true,
			opt("single", "未婚", "Single"),
			opt("married_no_children", "已婚无子女", "Married without children"),
			opt("married_with_children", "已婚有子女", "Married with children"),
		),
		q(14, "人物画像", "Demographics",
			"您的年收入范围大致为：",
			"What is your approximate annual income?",
			model.QuestionTypeSingle, true,
			opt("below_20k", "少于 SGD 20,000", "Less than SGD 20,000"),
			opt("20k_50k", "SGD 20,000 – 49,999", "SGD 20,000 – 49,999"),
			opt("50k_100k", "SGD 50,000 – 99,999", "SGD 50,000 – 99,999"),
			opt("above_100k", "SGD 100,000 以上", "Above SGD 100,000"),
		),
		q(15, "人物画像", "Demographics",
			"您的最高学历是？",
			"What is your highest education level?",
			model.QuestionTypeSingle, true,
			opt("secondary", "中学", "Secondary"),
			opt("post_secondary", "大专", "Post-Secondary"),
			opt("tertiary", "高等教育", "Tertiary"),
		),
		q(16, "用户参与意向", "User Engagement",
			"您有兴趣加入用户测试或抢先体验项目吗？",
			"Would you be interested in joining a user testing or early access program?",
			model.QuestionTypeSingle, true,
			opt("yes", "愿意", "Yes"),
			opt("no", "不愿意", "No"),
		),
		q(17, "联系信息", "Contact Info",
			"如果愿意，请留下您的邮箱或联系方式（可选）",
			"If willing, please leave your email or contact info (Optional)",
			model.QuestionTypeText, false,
		),
	}

	for i := range qs {
		if qs[i].ID == AndroidPriceQuestionID {
			qs[i].VisibleIf = androidOnly
		}
	}
	return qs
}

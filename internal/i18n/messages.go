package i18n

import (
	"golang.org/x/text/language"

	"covannot/internal/annotate"
)

// translations holds the built-in strings per supported locale. The first
// entry is the fallback.
var translations = []struct {
	tag      language.Tag
	messages map[annotate.MessageKey]string
}{
	{
		tag: language.English,
		messages: map[annotate.MessageKey]string{
			annotate.NotCoveredStatementTitle:   "🧾 Statement is not covered",
			annotate.NotCoveredStatementMessage: "Warning! Not covered statement",
			annotate.NotCoveredBranchTitle:      "🌿 Branch is not covered",
			annotate.NotCoveredBranchMessage:    "Warning! Not covered branch",
			annotate.NotCoveredFunctionTitle:    "🕹️ Function is not covered",
			annotate.NotCoveredFunctionMessage:  "Warning! Not covered function",
		},
	},
	{
		tag: language.Russian,
		messages: map[annotate.MessageKey]string{
			annotate.NotCoveredStatementTitle:   "🧾 Оператор не покрыт тестами",
			annotate.NotCoveredStatementMessage: "Внимание! Непокрытый оператор",
			annotate.NotCoveredBranchTitle:      "🌿 Ветка не покрыта тестами",
			annotate.NotCoveredBranchMessage:    "Внимание! Непокрытая ветка",
			annotate.NotCoveredFunctionTitle:    "🕹️ Функция не покрыта тестами",
			annotate.NotCoveredFunctionMessage:  "Внимание! Непокрытая функция",
		},
	},
}

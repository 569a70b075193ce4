package llm

import "fmt"

// PromptVersion tags the extraction prompt. The prompt embeds the output
// contract, so any edit to promptFormat is a contract change and must bump
// this version.
const PromptVersion = "v2-nested"

// promptFormat is the fixed extraction instruction. The JSON shape below is
// the card contract; it must stay in sync with schema.BuildCardJSONSchema.
const promptFormat = `以下の名刺テキストを解析して、次のJSONフォーマットで返してください。
値が無い場合は null を設定してください。
JSON以外は出力しないでください。
「mobile」は携帯番号、「phone」は会社の代表電話を入れてください。
"aiInterestLevel" は "high" / "medium" / "low" / "none" のいずれか、または null にしてください。
"lastName" と "firstName" は必須です。

フォーマット:
{
  "basicInfo": {
    "lastName": "",
    "firstName": "",
    "nameKana": null,
    "title": null,
    "email": null,
    "phone": null,
    "mobile": null,
    "businessCategory": null,
    "address": null
  },
  "contacts": {
    "website": null,
    "socialMedia": {
      "linkedin": null,
      "twitter": null,
      "instagram": null,
      "facebook": null
    }
  },
  "eventInfo": {
    "eventDate": null,
    "eventName": null,
    "location": null
  },
  "businessInfo": {
    "challenges": null,
    "itAdoptionStatus": null,
    "aiInterestLevel": null
  },
  "notes": null
}

テキスト:
%s
`

// BuildPrompt embeds the source text verbatim into the fixed instruction.
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptFormat, text)
}

// Package mockdata holds fixed extraction results used when live external
// calls are disabled, so the rest of the application runs end-to-end without
// credentials. The fixtures are part of the output contract: they must stay
// valid against the card schema.
package mockdata

import (
	"math/rand/v2"

	"github.com/meishiscan/cardscan/internal/card"
)

// Sample pairs an OCR text with its structured record, the same two-field
// shape a live pipeline run produces.
type Sample struct {
	Text string
	Card card.Card
}

func strptr(s string) *string { return &s }

var samples = []Sample{
	{
		Text: `田中 太郎
株式会社サンプル
営業部 部長
〒100-0001
東京都千代田区千代田1-1-1
TEL: 03-1234-5678
FAX: 03-1234-5679
Email: tanaka@sample.co.jp
Mobile: 090-1234-5678
Website: https://www.sample.co.jp`,
		Card: card.Card{
			BasicInfo: card.BasicInfo{
				LastName:         "田中",
				FirstName:        "太郎",
				NameKana:         strptr("タナカ タロウ"),
				Title:            strptr("部長"),
				Email:            strptr("tanaka@sample.co.jp"),
				Phone:            strptr("03-1234-5678"),
				Mobile:           strptr("090-1234-5678"),
				BusinessCategory: strptr("営業部"),
				Address:          strptr("〒100-0001 東京都千代田区千代田1-1-1"),
			},
			Contacts: card.Contacts{
				Website: strptr("https://www.sample.co.jp"),
			},
			EventInfo: card.EventInfo{
				EventDate: strptr("2025-10-11"),
				EventName: strptr("異業種交流会 東京"),
				Location:  strptr("東京"),
			},
			BusinessInfo: card.BusinessInfo{
				Challenges:       strptr("営業効率化の検討中"),
				ITAdoptionStatus: strptr("既存システム導入"),
				AIInterestLevel:  strptr(card.InterestMedium),
			},
			Notes: strptr("とても話しやすい"),
		},
	},
	{
		Text: `佐藤 花子
テクノロジー株式会社
CTO
〒150-0002
東京都渋谷区渋谷2-2-2
TEL: 03-9876-5432
Email: sato@tech.co.jp
Mobile: 080-9876-5432
LinkedIn: https://linkedin.com/in/sato-hanako
Twitter: @sato_hanako
Website: https://www.tech.co.jp`,
		Card: card.Card{
			BasicInfo: card.BasicInfo{
				LastName:  "佐藤",
				FirstName: "花子",
				NameKana:  strptr("サトウ ハナコ"),
				Title:     strptr("CTO"),
				Email:     strptr("sato@tech.co.jp"),
				Phone:     strptr("03-9876-5432"),
				Mobile:    strptr("080-9876-5432"),
				Address:   strptr("〒150-0002 東京都渋谷区渋谷2-2-2"),
			},
			Contacts: card.Contacts{
				Website: strptr("https://www.tech.co.jp"),
				SocialMedia: card.SocialMedia{
					LinkedIn: strptr("https://linkedin.com/in/sato-hanako"),
					Twitter:  strptr("@sato_hanako"),
				},
			},
			EventInfo: card.EventInfo{
				EventDate: strptr("2025-10-11"),
				EventName: strptr("異業種交流会 東京"),
				Location:  strptr("東京"),
			},
			BusinessInfo: card.BusinessInfo{
				Challenges:       strptr("AI導入による業務効率化を検討中"),
				ITAdoptionStatus: strptr("クラウド利用"),
				AIInterestLevel:  strptr(card.InterestHigh),
			},
		},
	},
	{
		Text: `山田 次郎
デザインスタジオ
フリーランスデザイナー
〒530-0001
大阪府大阪市北区梅田3-3-3
TEL: 06-1111-2222
Email: yamada@design.jp
Mobile: 070-1111-2222
Instagram: @yamada_design
Website: https://www.yamada-design.jp
Portfolio: https://portfolio.yamada-design.jp`,
		Card: card.Card{
			BasicInfo: card.BasicInfo{
				LastName:  "山田",
				FirstName: "次郎",
				NameKana:  strptr("ヤマダ ジロウ"),
				Title:     strptr("フリーランスデザイナー"),
				Email:     strptr("yamada@design.jp"),
				Phone:     strptr("06-1111-2222"),
				Mobile:    strptr("070-1111-2222"),
				Address:   strptr("〒530-0001 大阪府大阪市北区梅田3-3-3"),
			},
			Contacts: card.Contacts{
				Website: strptr("https://www.yamada-design.jp"),
				SocialMedia: card.SocialMedia{
					Instagram: strptr("@yamada_design"),
				},
			},
			EventInfo: card.EventInfo{
				EventDate: strptr("2025-10-11"),
				EventName: strptr("異業種交流会 大阪"),
				Location:  strptr("大阪"),
			},
			BusinessInfo: card.BusinessInfo{
				Challenges:       strptr("クライアント管理システムの導入を検討"),
				ITAdoptionStatus: strptr("Excel・アナログ"),
				AIInterestLevel:  strptr(card.InterestMedium),
			},
			Notes: strptr("とても話しやすく、ビジネスに繋がりそう"),
		},
	},
}

// Len reports the size of the fixed sample set.
func Len() int { return len(samples) }

// Random returns a uniformly chosen sample.
func Random() Sample {
	return samples[rand.N(len(samples))]
}

// ByIndex returns the sample at i, clamped into the valid range. Never fails.
func ByIndex(i int) Sample {
	if i < 0 {
		i = 0
	}
	if i >= len(samples) {
		i = len(samples) - 1
	}
	return samples[i]
}

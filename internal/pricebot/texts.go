package pricebot

import (
	"github.com/naseer2426/coin-price-bot/internal/command"
	"github.com/naseer2426/coin-price-bot/internal/markdown"
)

// Static replies are written directly in MarkdownV2.
const (
	startText = "输入`/help`查看所有命令。\n\n" +
		"价格数据由 [CoinMarketCap](https://coinmarketcap.com) 提供。"

	infoText = "*Coin Price Bot*\n\n" +
		"查询加密货币的美元价格，或计算指定数量的总价。\n" +
		"数据来源: [CoinMarketCap](https://coinmarketcap.com)\n" +
		"作者: [naseer2426](https://github.com/naseer2426)"

	calcUsageText = "参数错误，请按照`/calc [数量] [币名]`输入。"
)

// CommandNotFound is the reply to any text that is not a valid command.
const CommandNotFound = "Command not found!"

func helpText() string {
	return markdown.Escape("支持以下命令：\n" + command.Usage())
}

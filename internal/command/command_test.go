package command

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const botName = "CoinPriceBot"

func TestParseCommands(t *testing.T) {
	tests := []struct {
		text string
		want Command
	}{
		{"/help", Command{Kind: Help}},
		{"/start", Command{Kind: Start}},
		{"/info", Command{Kind: Info}},
		{"/HELP", Command{Kind: Help}},
		{"  /Start  ", Command{Kind: Start}},
		{"/p BTC", Command{Kind: Price, Args: "BTC"}},
		{"/p btc", Command{Kind: Price, Args: "btc"}},
		{"/P   ETH  ", Command{Kind: Price, Args: "ETH"}},
		{"/p\nBTC", Command{Kind: Price, Args: "BTC"}},
		{"/calc 10 BTC", Command{Kind: Calc, Args: "10 BTC"}},
		{"/calc", Command{Kind: Calc}},
		{"/calc 1 2 3", Command{Kind: Calc, Args: "1 2 3"}},
		{"/help@CoinPriceBot", Command{Kind: Help}},
		{"/p@coinpricebot DOGE", Command{Kind: Price, Args: "DOGE"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := Parse(tt.text, botName)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseNotACommand(t *testing.T) {
	texts := []string{
		"hello",
		"BTC",
		"/",
		"/unknown",
		"/prices BTC",
		"/help me",
		"/start now",
		"/p",
		"/p   ",
		"/help@OtherBot",
		"/p@OtherBot BTC",
		"p BTC",
	}

	for _, text := range texts {
		t.Run(text, func(t *testing.T) {
			_, err := Parse(text, botName)
			assert.ErrorIs(t, err, ErrNotCommand)
		})
	}
}

func TestUsageListsEveryCommand(t *testing.T) {
	usage := Usage()
	lines := strings.Split(usage, "\n")
	require.Len(t, lines, len(Specs))

	for i, s := range Specs {
		assert.True(t, strings.HasPrefix(lines[i], "/"+s.Name+" "), lines[i])
		assert.True(t, strings.HasSuffix(lines[i], " - "+s.Description), lines[i])
	}
	assert.Contains(t, usage, "/calc [数量] [币名] - 计算总价")
	assert.Contains(t, usage, "/help - 显示所有命令")
}

func TestParseCalcArgs(t *testing.T) {
	args, err := ParseCalcArgs("10 BTC")
	require.NoError(t, err)
	assert.True(t, args.Amount.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, "BTC", args.Symbol)

	args, err = ParseCalcArgs("  0.25\tEth ")
	require.NoError(t, err)
	assert.Equal(t, "0.25", args.Amount.String())
	assert.Equal(t, "Eth", args.Symbol)

	args, err = ParseCalcArgs("1e30 BTC")
	require.NoError(t, err)
	assert.Equal(t, "1"+strings.Repeat("0", 30), args.Amount.String())
}

func TestParseCalcArgsUsageError(t *testing.T) {
	params := []string{
		"",
		"   ",
		"10",
		"BTC",
		"10 BTC ETH",
		"1 2 3 4",
		"abc BTC",
		"10x BTC",
		"NaN BTC",
		"Inf BTC",
		"1e20000000 BTC",
		"1e-20000000 BTC",
		"1e31 BTC",
		"0.0000000000000000000000000000001 BTC",
		"1" + strings.Repeat("0", 64) + " BTC",
	}

	for _, p := range params {
		t.Run(p, func(t *testing.T) {
			_, err := ParseCalcArgs(p)
			assert.ErrorIs(t, err, ErrCalcUsage)
		})
	}
}

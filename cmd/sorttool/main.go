// Copyright 2025-2026 plamb
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.uber.org/zap"

	"github.com/plamb/sortdesc/pkg/chunk"
	"github.com/plamb/sortdesc/pkg/common"
	"github.com/plamb/sortdesc/pkg/expcache"
	"github.com/plamb/sortdesc/pkg/jit"
	"github.com/plamb/sortdesc/pkg/sortdesc"
	"github.com/plamb/sortdesc/pkg/util"
)

type toolConfig struct {
	OrderBy    string
	Types      string
	Rounds     int
	CacheBytes uint64
}

var toolCfg = &toolConfig{}

func init() {
	cobra.OnInitialize(loadConfig)
	initParseCmd()
	initBenchCmd()
}

var info = "sorttool"
var RootCmd = &cobra.Command{
	Use:          "sorttool",
	Short:        info,
	Long:         info,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("use sorttool --help or -h")
	},
}

//parse cmd

var parseInfo = "parse an ORDER BY clause and dump the sort description"
var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: parseInfo,
	Long:  parseInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		initToolCfg()
		d, err := sortdesc.ParseOrderBy(toolCfg.OrderBy)
		if err != nil {
			return err
		}
		fmt.Println(d.Dump())
		fmt.Print(d.ExplainTree())

		serial := util.NewBufferSerialize()
		err = d.Serialize(serial)
		if err != nil {
			return err
		}
		fmt.Printf("wire size: %d bytes\n", len(serial.Bytes()))
		return nil
	},
}

func initParseCmd() {
	RootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVar(&toolCfg.OrderBy, "order-by", "", "ORDER BY clause text")
	viper.BindPFlag("sorttool.orderBy", parseCmd.Flags().Lookup("order-by"))
}

//bench cmd

var benchInfo = "exercise the compilation gate and cache on one sort description"
var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: benchInfo,
	Long:  benchInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		initToolCfg()
		return runBench()
	},
}

func initBenchCmd() {
	RootCmd.AddCommand(benchCmd)
	benchCmd.Flags().StringVar(&toolCfg.OrderBy, "order-by", "a ASC, b DESC", "ORDER BY clause text")
	benchCmd.Flags().StringVar(&toolCfg.Types, "types", "BIGINT,DOUBLE", "comma-separated column types")
	benchCmd.Flags().IntVar(&toolCfg.Rounds, "rounds", 10, "how many times to run the description")
	benchCmd.Flags().Uint64Var(&toolCfg.CacheBytes, "cache_bytes", 1<<20, "compiled expression cache capacity")

	viper.BindPFlag("sorttool.orderBy", benchCmd.Flags().Lookup("order-by"))
	viper.BindPFlag("sorttool.types", benchCmd.Flags().Lookup("types"))
	viper.BindPFlag("sorttool.rounds", benchCmd.Flags().Lookup("rounds"))
	viper.BindPFlag("sorttool.cacheBytes", benchCmd.Flags().Lookup("cache_bytes"))
}

func initToolCfg() {
	if v := viper.GetString("sorttool.orderBy"); v != "" {
		toolCfg.OrderBy = v
	}
	if v := viper.GetString("sorttool.types"); v != "" {
		toolCfg.Types = v
	}
	if v := viper.GetInt("sorttool.rounds"); v != 0 {
		toolCfg.Rounds = v
	}
	if v := viper.GetUint64("sorttool.cacheBytes"); v != 0 {
		toolCfg.CacheBytes = v
	}
}

func runBench() error {
	d, err := sortdesc.ParseOrderBy(toolCfg.OrderBy)
	if err != nil {
		return err
	}
	types, err := parseTypes(toolCfg.Types)
	if err != nil {
		return err
	}
	if len(types) != len(d.Columns) {
		return fmt.Errorf("%d order by columns but %d types", len(d.Columns), len(types))
	}

	cache := expcache.New(toolCfg.CacheBytes)
	service := sortdesc.NewCompileService(jit.NewCodeGenContext(), cache)

	for round := 0; round < toolCfg.Rounds; round++ {
		err = service.CompileSortDescriptionIfNeeded(d, types, true)
		if err != nil {
			return err
		}
		if d.CompiledSortDescription != nil {
			util.Info("comparator compiled",
				zap.Int("round", round),
				zap.Int64("cacheHits", cache.Hits()),
				zap.Int64("cacheMisses", cache.Misses()),
				zap.Uint64("cacheBytes", cache.SizeBytes()))
			break
		}
	}

	cmp := d.CompiledSortDescription
	if cmp == nil {
		util.Info("description stayed on the interpreted path")
		cmp, err = d.BuildComparator(types)
		if err != nil {
			return err
		}
	}

	lhs, rhs := sampleRows(types)
	fmt.Printf("compare(%v, %v) = %d\n", lhs, rhs, cmp(lhs, rhs))
	d.ReleaseCompiled()
	return nil
}

func parseTypes(text string) ([]common.LType, error) {
	parts := strings.Split(text, ",")
	types := make([]common.LType, 0, len(parts))
	for _, part := range parts {
		switch strings.ToUpper(strings.TrimSpace(part)) {
		case "BOOLEAN":
			types = append(types, common.BooleanType())
		case "INTEGER":
			types = append(types, common.IntegerType())
		case "BIGINT":
			types = append(types, common.BigintType())
		case "UBIGINT":
			types = append(types, common.UbigintType())
		case "FLOAT":
			types = append(types, common.FloatType())
		case "DOUBLE":
			types = append(types, common.DoubleType())
		case "DATE":
			types = append(types, common.DateType())
		case "VARCHAR":
			types = append(types, common.VarcharType())
		default:
			return nil, fmt.Errorf("unknown type %q", part)
		}
	}
	return types, nil
}

func sampleRows(types []common.LType) ([]chunk.Value, []chunk.Value) {
	lhs := make([]chunk.Value, len(types))
	rhs := make([]chunk.Value, len(types))
	for i, typ := range types {
		switch typ.GetInternalType() {
		case common.BOOL:
			lhs[i] = chunk.BooleanValue(false)
			rhs[i] = chunk.BooleanValue(true)
		case common.INT32, common.INT64:
			lhs[i] = chunk.Value{Typ: typ, I64: int64(i)}
			rhs[i] = chunk.Value{Typ: typ, I64: int64(i) + 1}
		case common.UINT64:
			lhs[i] = chunk.Value{Typ: typ, U64: uint64(i)}
			rhs[i] = chunk.Value{Typ: typ, U64: uint64(i) + 1}
		case common.FLOAT, common.DOUBLE:
			lhs[i] = chunk.Value{Typ: typ, F64: float64(i)}
			rhs[i] = chunk.Value{Typ: typ, F64: float64(i) + 0.5}
		case common.DATE:
			lhs[i] = chunk.DateValue(2026, 1, 1)
			rhs[i] = chunk.DateValue(2026, 8, 30)
		default:
			lhs[i] = chunk.VarcharValue("alpha")
			rhs[i] = chunk.VarcharValue("beta")
		}
	}
	return lhs, rhs
}

var defCfgFilePaths = []string{".", "etc"}
var cfgFileName = "sorttool.toml"

func loadConfig() {
	for _, dirPath := range defCfgFilePaths {
		fpath := filepath.Join(dirPath, cfgFileName)
		if util.FileIsValid(fpath) {
			viper.SetConfigFile(fpath)
			if err := viper.ReadInConfig(); err != nil {
				util.Error("viper load config file failed",
					zap.String("fpath", fpath),
					zap.Error(err))
				continue
			}
			return
		}
	}
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

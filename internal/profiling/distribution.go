package profiling

import (
	"math"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"
)

// analyzeDistribution computes the summary statistics and shape markers of
// a numeric sample
func analyzeDistribution(data []float64, cfg ProfilingConfig) (SummaryStats, DistributionShape, error) {
	var summary SummaryStats
	var shape DistributionShape

	mean, err := stats.Mean(data)
	if err != nil {
		return summary, shape, err
	}
	stdDev, err := stats.StandardDeviation(data)
	if err != nil {
		return summary, shape, err
	}
	min, err := stats.Min(data)
	if err != nil {
		return summary, shape, err
	}
	max, err := stats.Max(data)
	if err != nil {
		return summary, shape, err
	}
	median, err := stats.Median(data)
	if err != nil {
		return summary, shape, err
	}
	q25, err := stats.Percentile(data, 25)
	if err != nil {
		q25 = median
	}
	q75, err := stats.Percentile(data, 75)
	if err != nil {
		q75 = median
	}

	summary = SummaryStats{
		Mean:   mean,
		StdDev: stdDev,
		Min:    min,
		Max:    max,
		Median: median,
		Q25:    q25,
		Q75:    q75,
	}

	if stdDev > 0 {
		shape.Skewness = calculateSkewness(data, mean, stdDev)
		shape.Kurtosis = calculateKurtosis(data, mean, stdDev)
	}
	if len(data) >= cfg.MinSampleForNormality && stdDev > 0 {
		shape.IsNormal, shape.NormalP = testNormality(shape.Skewness, shape.Kurtosis, cfg.NormalityAlpha)
	}
	return summary, shape, nil
}

// calculateSkewness computes sample skewness using the adjusted Fisher-Pearson coefficient
func calculateSkewness(data []float64, mean, stdDev float64) float64 {
	if len(data) < 3 {
		return 0
	}

	n := float64(len(data))
	sumCubedDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumCubedDeviations += deviation * deviation * deviation
	}
	skewness := sumCubedDeviations / n

	// Bias correction for sample skewness
	correction := math.Sqrt(n*(n-1)) / (n - 2)
	return skewness * correction
}

// calculateKurtosis computes sample kurtosis (normal distribution reads 3)
func calculateKurtosis(data []float64, mean, stdDev float64) float64 {
	if len(data) < 4 {
		return 0
	}

	n := float64(len(data))
	sumFourthDeviations := 0.0
	for _, x := range data {
		deviation := (x - mean) / stdDev
		sumFourthDeviations += deviation * deviation * deviation * deviation
	}
	kurtosis := sumFourthDeviations / n

	excess := kurtosis - 3
	if n > 3 {
		correction := (n - 1) / ((n - 2) * (n - 3))
		excess = excess*correction + 6/(n+1)
	}
	return excess + 3
}

// testNormality approximates a skewness/kurtosis omnibus test. The combined
// statistic is referred to a chi-square with 2 degrees of freedom; a proper
// D'Agostino K-squared would transform each moment first.
func testNormality(skewness, kurtosis, alpha float64) (isNormal bool, pValue float64) {
	testStat := math.Abs(skewness) + math.Abs(kurtosis-3)/2

	chiDist := distuv.ChiSquared{K: 2}
	pValue = 1 - chiDist.CDF(testStat*testStat)

	return pValue > alpha, pValue
}

// iqrOutliers counts values outside the 1.5*IQR fences
func iqrOutliers(data []float64, q25, q75 float64) int {
	iqr := q75 - q25
	lowerBound := q25 - 1.5*iqr
	upperBound := q75 + 1.5*iqr

	count := 0
	for _, x := range data {
		if x < lowerBound || x > upperBound {
			count++
		}
	}
	return count
}

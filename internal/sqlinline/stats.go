package sqlinline

const QUserDonationTotalUSD = `--sql 3e1a6b9c-71d4-4c8a-9f02-5b6d7e8f9a01
select coalesce((select sum(usd_value) from donations where donor_id = $1::uuid), 0)
     + coalesce((select sum(amount_cents)::numeric / 100 from fiat_donations where donor_id = $1::uuid), 0);
`

const QUserSelfReportedTotals = `--sql 8c2f4d6e-90ab-4cde-8f12-3a4b5c6d7e02
select
  coalesce(sum(hours) filter (where status = 'validated'), 0),
  coalesce(sum(hours) filter (where status in ('unvalidated', 'pending')), 0)
from self_reported_hours
where volunteer_id = $1::uuid;
`

const QTopDonors = `--sql f0e1d2c3-b4a5-4968-8776-655443322103
select u.id, coalesce(u.display_name, ''), t.total
from (
  select donor_id, sum(total) as total
  from (
    select donor_id, sum(usd_value) as total from donations where donor_id is not null group by donor_id
    union all
    select donor_id, sum(amount_cents)::numeric / 100 from fiat_donations where donor_id is not null group by donor_id
  ) combined
  group by donor_id
  order by total desc
  limit $1::int
) t
join volunteers u on u.id = t.donor_id
order by t.total desc;
`

const QTopVolunteers = `--sql 1a2b3c4d-5e6f-4071-8293-a4b5c6d7e804
select u.id, coalesce(u.display_name, ''), t.score
from (
  select volunteer_id,
         coalesce(sum(hours) filter (where status = 'validated'), 0)
       + coalesce(sum(hours) filter (where status in ('unvalidated', 'pending')), 0) / 2 as score
  from self_reported_hours
  group by volunteer_id
  order by score desc
  limit $1::int
) t
join volunteers u on u.id = t.volunteer_id
order by t.score desc;
`

const QGlobalTotals = `--sql 9d8c7b6a-5f4e-4d3c-8b2a-190817161505
select
  coalesce((select sum(usd_value) from donations), 0)
    + coalesce((select sum(amount_cents)::numeric / 100 from fiat_donations), 0),
  coalesce((select sum(hours) from self_reported_hours), 0),
  (select count(*) from volunteers),
  (select count(*) from organizations where verified);
`
